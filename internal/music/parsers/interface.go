package parsers

import "io"

type Streamer interface {
	GetLinkStream(track *Track, seekSec float64) (io.ReadCloser, func(), error)
	GetPipeStream(track *Track, seekSec float64) (io.ReadCloser, func(), error)
	SupportsPipe() bool
}
