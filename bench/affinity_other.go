//go:build !linux

package bench

func pinToCPU(cpu int) (func(), error) {
	return nil, ErrPinUnsupported
}
