package codec

import (
	"fmt"
	"io"

	jsonpatch "github.com/agentflare-ai/cowpatch"
)

// ApplyStream reads a JSON or YAML document from reader, applies patch and
// writes the result to writer in the given format. Nothing is written when
// the document cannot be decoded or an operation fails; the patch error is
// returned unwrapped so callers can match its kind.
func ApplyStream(reader io.Reader, writer io.Writer, patch jsonpatch.Patch, format Format) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return err
	}
	result, err := jsonpatch.Apply(doc, patch)
	if err != nil {
		return err
	}
	return Encode(writer, result, format)
}
