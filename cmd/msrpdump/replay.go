package main

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/danmuck/mrpd/internal/metrics"
	"github.com/danmuck/mrpd/internal/mrp"
	"github.com/danmuck/mrpd/internal/msrp"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/rs/zerolog/log"
)

const pcapngMagic = 0x0a0d0d0a

// packetSource is satisfied by both pcapgo readers.
type packetSource interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
}

type capture struct {
	packetSource
	file *os.File
}

func (c *capture) Close() error {
	return c.file.Close()
}

// openCapture opens a pcap or pcapng file of Ethernet frames.
func openCapture(path string) (*capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture %s: %w", path, err)
	}
	br := bufio.NewReader(f)
	magic, err := br.Peek(4)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read capture header %s: %w", path, err)
	}

	var (
		src  packetSource
		link layers.LinkType
	)
	if binary.BigEndian.Uint32(magic) == pcapngMagic {
		r, err := pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("read pcapng %s: %w", path, err)
		}
		src, link = r, r.LinkType()
	} else {
		r, err := pcapgo.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("read pcap %s: %w", path, err)
		}
		src, link = r, r.LinkType()
	}
	if link != layers.LinkTypeEthernet {
		f.Close()
		return nil, fmt.Errorf("capture %s: unsupported link type %s", path, link)
	}
	return &capture{packetSource: src, file: f}, nil
}

// summary tallies one replay.
type summary struct {
	Frames   int
	Accepted int
	Events   int
	Ignored  int
	Discards map[string]int
}

func (s summary) log(source string) {
	reasons := make([]string, 0, len(s.Discards))
	for reason := range s.Discards {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	log.Info().Msgf("msrpdump.replay done source=%s frames=%d accepted=%d events=%d ignored=%d",
		source, s.Frames, s.Accepted, s.Events, s.Ignored)
	for _, reason := range reasons {
		log.Info().Msgf("msrpdump.replay discards reason=%s count=%d", reason, s.Discards[reason])
	}
}

// replay decodes every frame of src. Each frame is decoded to completion
// before the next is read.
func replay(ctx context.Context, dec *mrp.Decoder, src packetSource, logEvents bool) (summary, error) {
	app := dec.Application().Name
	out := summary{Discards: make(map[string]int)}

	var frame int
	var ci gopacket.CaptureInfo
	sess := mrp.NewSession(metrics.Observer(app, func(_ *mrp.Session, ev mrp.Event) {
		if logEvents {
			log.Info().Msgf("msrpdump.replay frame=%d ts=%s %s", frame, ci.Timestamp.Format("15:04:05.000000"), msrp.Describe(ev))
		}
	}))

	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		data, info, err := src.ReadPacketData()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("read frame %d: %w", frame+1, err)
		}
		frame++
		ci = info

		err = dec.Decode(sess, data)
		metrics.RecordDecode(app, err)
		if err != nil {
			out.Discards[mrp.Reason(err)]++
			if !errors.Is(err, mrp.ErrInvalidFrame) {
				log.Warn().Msgf("msrpdump.replay discard frame=%d err=%v", frame, err)
			}
		}
	}

	out.Frames = frame
	out.Accepted = sess.Accepted()
	out.Events = sess.Events()
	out.Ignored = sess.Ignored()
	return out, nil
}
