package assets

import (
	"errors"
	"fmt"
	"io"

	"github.com/dutchcoders/go-clamd"
)

// ClamdScanner 通过 clamd 的 INSTREAM 命令扫描上传内容。
type ClamdScanner struct {
	Addr string
}

// Scan 实现 Scanner。
func (s ClamdScanner) Scan(r io.Reader) error {
	if s.Addr == "" {
		return errors.New("clamd address is not configured")
	}
	client := clamd.NewClamd(s.Addr)

	abortChan := make(chan bool)
	defer close(abortChan)

	scanChan, err := client.ScanStream(r, abortChan)
	if err != nil {
		return fmt.Errorf("scan file: %w", err)
	}

	for result := range scanChan {
		switch result.Status {
		case clamd.RES_OK:
		case clamd.RES_FOUND:
			return fmt.Errorf("%w: %s", ErrInfected, result.Description)
		default:
			return fmt.Errorf("scan file: %s", result.Raw)
		}
	}
	return nil
}
