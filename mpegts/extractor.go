package mpegts

import (
	"errors"
	"io"
	"log/slog"
)

const spliceTableID = 0xFC

// Extractor reads MPEG-TS packets from a reader and emits complete SCTE-35
// splice information sections. Cue PIDs are discovered from the PMT
// (stream_type 0x86); PIDs registered with ExtractorOptPID are scanned
// regardless of what the PMT says.
type Extractor struct {
	log     *slog.Logger
	reader  io.Reader
	pids    *pidMap
	pool    *packetPool
	readBuf []byte
	queue   []Section
	eof     bool
}

// NewExtractor creates an Extractor reading from r.
func NewExtractor(r io.Reader, opts ...func(*Extractor)) *Extractor {
	pids := newPIDMap()
	e := &Extractor{
		log:     slog.Default(),
		reader:  r,
		pids:    pids,
		pool:    newPacketPool(pids),
		readBuf: make([]byte, packetSize),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractorOptPID registers an explicit cue PID, bypassing PMT discovery.
func ExtractorOptPID(pid uint16) func(*Extractor) {
	return func(e *Extractor) {
		e.pids.addCuePID(pid)
	}
}

// ExtractorOptLogger sets the logger (default slog.Default()).
func ExtractorOptLogger(log *slog.Logger) func(*Extractor) {
	return func(e *Extractor) {
		e.log = log
	}
}

// Next returns the next splice information section found in the stream.
// Returns io.EOF when the stream has been fully consumed.
func (e *Extractor) Next() (Section, error) {
	for {
		// Drain extracted sections first.
		if len(e.queue) > 0 {
			s := e.queue[0]
			e.queue = e.queue[1:]
			return s, nil
		}

		if e.eof {
			return Section{}, io.EOF
		}

		// Read next packet.
		_, err := io.ReadFull(e.reader, e.readBuf)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				e.eof = true
				e.drainPool()
				continue
			}
			return Section{}, err
		}

		pkt, err := parsePacket(e.readBuf)
		if err != nil {
			continue // skip corrupt packets
		}

		flushed := e.pool.add(pkt)
		if flushed == nil {
			continue
		}
		e.processPackets(flushed)
	}
}

func (e *Extractor) drainPool() {
	for _, packets := range e.pool.dump() {
		e.processPackets(packets)
	}
}

func (e *Extractor) processPackets(packets []*Packet) {
	if len(packets) == 0 {
		return
	}
	pid := packets[0].Header.PID

	var payload []byte
	for _, p := range packets {
		payload = append(payload, p.Payload...)
	}
	if len(payload) == 0 {
		return
	}

	switch {
	case e.pids.isCuePID(pid):
		e.extractCueSections(pid, payload)

	case pid == pidPAT || e.pids.isPMTPID(pid):
		results, err := parsePSI(payload)
		if err != nil {
			e.log.Debug("skipping corrupt PSI section", "pid", pid, "error", err)
			return
		}
		for _, r := range results {
			if r.pat != nil {
				for _, prog := range r.pat.Programs {
					e.pids.addPMTPID(prog.ProgramMapID)
				}
			}
			if r.pmt != nil {
				for _, es := range r.pmt.ElementaryStreams {
					if es.StreamType == streamTypeSCTE35 && !e.pids.isCuePID(es.ElementaryPID) {
						e.pids.addCuePID(es.ElementaryPID)
						e.log.Info("found SCTE-35 PID", "pid", es.ElementaryPID)
					}
				}
			}
		}
	}
}

// extractCueSections walks the reassembled payload of a cue PID and queues
// each splice_info_section it contains.
func (e *Extractor) extractCueSections(pid uint16, payload []byte) {
	pointerField := int(payload[0])
	offset := 1 + pointerField
	if offset >= len(payload) {
		return
	}

	for offset < len(payload) {
		if payload[offset] == 0xFF {
			break // stuffing bytes
		}
		if offset+3 > len(payload) {
			break
		}
		if payload[offset] != spliceTableID {
			e.log.Debug("unexpected table on cue PID", "pid", pid, "table_id", payload[offset])
			break
		}

		sectionLength := int(payload[offset+1]&0x0F)<<8 | int(payload[offset+2])
		sectionEnd := offset + 3 + sectionLength
		if sectionEnd > len(payload) {
			break // incomplete section, drop
		}

		data := make([]byte, sectionEnd-offset)
		copy(data, payload[offset:sectionEnd])
		e.queue = append(e.queue, Section{PID: pid, Data: data})

		offset = sectionEnd
	}
}
