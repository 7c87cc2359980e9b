package cli

import (
	"fmt"
	"io"

	"fileverify/internal/buildinfo"
)

func writeVersion(out io.Writer) error {
	if _, err := fmt.Fprintln(out, buildinfo.Get().String()); err != nil {
		return fmt.Errorf("write version output: %w", err)
	}
	return nil
}
