package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/benedict-erwin/store-console/internal/entities/indents"
)

// stdin is swapped by tests
var stdin io.Reader = os.Stdin

// readPayload decodes a JSON object from path, or from stdin when path is "-"
func readPayload(path string) (map[string]any, error) {
	var (
		raw []byte
		err error
	)
	if path == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return nil, fmt.Errorf("payload must be a JSON object: %w", err)
	}
	return payload, nil
}

// parseItems reads CODE=QTY[:UOM] item flags
func parseItems(specs []string) ([]indents.CreateItem, error) {
	items := make([]indents.CreateItem, 0, len(specs))
	for _, spec := range specs {
		code, rest, ok := strings.Cut(spec, "=")
		if !ok || strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("invalid item %q, expected CODE=QTY[:UOM]", spec)
		}
		qty, uom, _ := strings.Cut(rest, ":")
		n, err := strconv.ParseFloat(strings.TrimSpace(qty), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity in item %q", spec)
		}
		items = append(items, indents.CreateItem{
			ItemCode:   strings.TrimSpace(code),
			RequestQty: n,
			UOM:        strings.TrimSpace(uom),
		})
	}
	return items, nil
}
