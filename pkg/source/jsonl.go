package source

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/c9s/signalcore/pkg/types"
)

// JSONLSource replays kline events from a stream of JSON lines, one event
// per line. It stands in for the exchange connectivity layer at the
// ingestion boundary: malformed lines and rejected events are logged and
// dropped, they never stop the stream.
type JSONLSource struct {
	reader io.Reader
}

func NewJSONLSource(reader io.Reader) *JSONLSource {
	return &JSONLSource{reader: reader}
}

func (s *JSONLSource) Run(ctx context.Context, handler func(types.KLine) error) error {
	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var k types.KLine
		if err := json.Unmarshal(line, &k); err != nil {
			log.WithError(err).Warn("can not parse kline event line, dropping")
			continue
		}

		if err := handler(k); err != nil {
			log.WithError(err).WithField("symbol", k.Symbol).
				Warn("kline event rejected, dropping")
		}
	}

	return scanner.Err()
}
