//go:build !unix

package audio

import (
	"errors"
	"os"
)

func pauseProcess(*os.Process) error {
	return errors.ErrUnsupported
}

func resumeProcess(*os.Process) error {
	return errors.ErrUnsupported
}
