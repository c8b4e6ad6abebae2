package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	srtgo "github.com/zsiec/srtgo"
	"golang.org/x/sync/errgroup"

	"github.com/zsiec/scte35"
	"github.com/zsiec/scte35/mpegts"
)

// srtReadBufferSize is the read buffer for SRT socket reads.
// 1316 bytes = 7 MPEG-TS packets (188 * 7), the standard SRT payload size.
const srtReadBufferSize = 1316 * 10

// srtLatencyNs is the SRT latency setting in nanoseconds (120ms).
const srtLatencyNs = 120_000_000

var listenCmd = &cobra.Command{
	Use:   "listen <addr>",
	Short: "Accept SRT publishes and monitor their SCTE-35 cues live",
	Long: `Listen accepts SRT publish connections (e.g. from ffmpeg or an
encoder) and logs every SCTE-35 cue carried in each incoming transport
stream. Publishers must supply a stream ID.

Example:
  cuetool listen :6000
  ffmpeg -re -i input.ts -c copy -f mpegts "srt://localhost:6000?streamid=live/demo"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return listen(ctx, args[0], slog.Default())
	},
}

func listen(ctx context.Context, addr string, log *slog.Logger) error {
	cfg := srtgo.DefaultConfig()
	cfg.Latency = srtLatencyNs

	l, err := srtgo.Listen(addr, cfg)
	if err != nil {
		return fmt.Errorf("SRT listen on %s: %w", addr, err)
	}
	log.Info("listening", "addr", addr)

	l.SetAcceptRejectFunc(func(req srtgo.ConnRequest) srtgo.RejectReason {
		if req.StreamID == "" {
			return srtgo.RejPeer
		}
		return 0
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		l.Close()
		return nil
	})

	g.Go(func() error {
		for {
			conn, err := l.Accept()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Warn("accept error", "error", err)
				continue
			}

			streamKey := extractStreamKey(conn.StreamID())
			connLog := log.With("stream_key", streamKey)
			connLog.Info("publish", "remote", conn.RemoteAddr())

			g.Go(func() error {
				handleConnection(ctx, conn, connLog)
				return nil
			})
		}
	})

	return g.Wait()
}

// handleConnection pipes SRT reads into the section extractor and logs
// each cue as it decodes. The pipe decouples the blocking SRT read loop
// from the extractor, so a shutdown only has to close the connection.
func handleConnection(ctx context.Context, conn *srtgo.Conn, log *slog.Logger) {
	defer conn.Close()

	pr, pw := io.Pipe()

	go func() {
		defer pw.Close()
		buf := make([]byte, srtReadBufferSize)
		for {
			if ctx.Err() != nil {
				return
			}
			n, err := conn.Read(buf)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					log.Debug("read error", "error", err)
				}
				return
			}
			if _, err := pw.Write(buf[:n]); err != nil {
				return
			}
		}
	}()

	ex := mpegts.NewExtractor(pr, mpegts.ExtractorOptLogger(log))
	cues := 0
	for {
		section, err := ex.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Debug("extractor error", "error", err)
			break
		}

		sis, err := scte35.Decode(section.Data)
		if err != nil {
			log.Warn("undecodable cue section", "pid", section.PID, "error", err)
			continue
		}
		cues++
		logCue(log, section.PID, sis)
	}

	log.Info("connection closed", "cues", cues)
}

func extractStreamKey(streamID string) string {
	streamID = strings.TrimPrefix(streamID, "/")
	streamID = strings.TrimPrefix(streamID, "live/")
	if streamID == "" {
		return "default"
	}
	return streamID
}
