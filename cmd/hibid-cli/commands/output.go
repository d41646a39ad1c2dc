package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jedib0t/go-pretty/v6/table"
	"hibid-backend/internal/service"
)

func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

func printJson(out io.Writer, body service.Envelope) error {
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return encoder.Encode(body)
}

// statusError turns every non-2xx response into a command error.
func statusError(res service.Response) error {
	if res.Status >= 200 && res.Status < 300 {
		return nil
	}
	return fmt.Errorf("%d %s: %s", res.Status, http.StatusText(res.Status), res.Body.Error)
}

func idString(id *int64) string {
	if id == nil {
		return "-"
	}
	return fmt.Sprint(*id)
}
