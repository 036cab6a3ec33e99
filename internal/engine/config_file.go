package engine

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// checkConfiguration verifies path exists and is a well-formed XML document
// rooted at <enunciate>.
func checkConfiguration(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	dec := xml.NewDecoder(f)
	root := ""
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrConfigMalformed, path, err)
		}
		if se, ok := tok.(xml.StartElement); ok && root == "" {
			root = se.Name.Local
		}
	}
	if root != "enunciate" {
		return fmt.Errorf("%w: %s: root element is %q, want \"enunciate\"", ErrConfigMalformed, path, root)
	}
	return nil
}
