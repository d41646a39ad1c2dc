package restyutil

import (
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"

	"github.com/go-resty/resty/v2"
)

// DumpExchanges writes every completed exchange made by client into out.
// If out is nil this is a no-op.
func DumpExchanges(client *resty.Client, out InstrumentOutput) {
	if out == nil {
		return
	}

	var idcounter uint64
	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		id := atomic.AddUint64(&idcounter, 1)
		out.Write(messageId(id, res.Request.Method, res.Request.URL), formatHttpMessage(res))
		return nil
	})
}

// messageId yields a filesystem safe name, ex. "0001-GET-company-133721-slug.txt"
func messageId(id uint64, method, rawUrl string) string {
	path := rawUrl
	parsed, err := url.Parse(rawUrl)
	if err == nil {
		path = parsed.Path
	}
	path = strings.Trim(path, "/")
	path = strings.ReplaceAll(path, "/", "-")
	if path == "" {
		path = "root"
	}
	return fmt.Sprintf("%04d-%s-%s.txt", id, method, path)
}
