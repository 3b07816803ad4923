//go:build !windows

package clipboard

func writeDIB([]byte) error { return ErrUnsupported }

func readDIB() ([]byte, error) { return nil, ErrUnsupported }
