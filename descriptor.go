package scte35

import "fmt"

// Splice descriptor tags the grammar defines. Only the segmentation
// descriptor is decoded; the other known tags fail with
// ErrUnsupportedDescriptorTag so callers can tell "recognized but not
// implemented" apart from garbage.
const (
	AvailDescriptorTag        uint32 = 0x00
	DTMFDescriptorTag         uint32 = 0x01
	SegmentationDescriptorTag uint32 = 0x02
	TimeDescriptorTag         uint32 = 0x03
)

// CUEIdentifier is the CUEI ASCII identifier (0x43554549).
const CUEIdentifier uint32 = 0x43554549

// SpliceDescriptor is implemented by the decoded descriptor types. The set
// is closed the same way SpliceCommand is.
type SpliceDescriptor interface {
	Tag() uint32
}

// SpliceDescriptors is a slice of SpliceDescriptor.
type SpliceDescriptors []SpliceDescriptor

// Segmentation type constants per SCTE-35 Table 22.
const (
	SegmentationTypeNotIndicated              uint32 = 0x00
	SegmentationTypeContentIdentification     uint32 = 0x01
	SegmentationTypeProgramStart              uint32 = 0x10
	SegmentationTypeProgramEnd                uint32 = 0x11
	SegmentationTypeProgramEarlyTermination   uint32 = 0x12
	SegmentationTypeProgramBreakaway          uint32 = 0x13
	SegmentationTypeProgramResumption         uint32 = 0x14
	SegmentationTypeProgramRunoverPlanned     uint32 = 0x15
	SegmentationTypeProgramRunoverUnplanned   uint32 = 0x16
	SegmentationTypeProgramOverlapStart       uint32 = 0x17
	SegmentationTypeProgramBlackoutOverride   uint32 = 0x18
	SegmentationTypeProgramStartInProgress    uint32 = 0x19
	SegmentationTypeChapterStart              uint32 = 0x20
	SegmentationTypeChapterEnd                uint32 = 0x21
	SegmentationTypeBreakStart                uint32 = 0x22
	SegmentationTypeBreakEnd                  uint32 = 0x23
	SegmentationTypeOpeningCreditStart        uint32 = 0x24
	SegmentationTypeOpeningCreditEnd          uint32 = 0x25
	SegmentationTypeClosingCreditStart        uint32 = 0x26
	SegmentationTypeClosingCreditEnd          uint32 = 0x27
	SegmentationTypeProviderAdStart           uint32 = 0x30
	SegmentationTypeProviderAdEnd             uint32 = 0x31
	SegmentationTypeDistributorAdStart        uint32 = 0x32
	SegmentationTypeDistributorAdEnd          uint32 = 0x33
	SegmentationTypeProviderPOStart           uint32 = 0x34
	SegmentationTypeProviderPOEnd             uint32 = 0x35
	SegmentationTypeDistributorPOStart        uint32 = 0x36
	SegmentationTypeDistributorPOEnd          uint32 = 0x37
	SegmentationTypeProviderOverlayPOStart    uint32 = 0x38
	SegmentationTypeProviderOverlayPOEnd      uint32 = 0x39
	SegmentationTypeDistributorOverlayPOStart uint32 = 0x3a
	SegmentationTypeDistributorOverlayPOEnd   uint32 = 0x3b
	SegmentationTypeProviderPromoStart        uint32 = 0x3c
	SegmentationTypeProviderPromoEnd          uint32 = 0x3d
	SegmentationTypeDistributorPromoStart     uint32 = 0x3e
	SegmentationTypeDistributorPromoEnd       uint32 = 0x3f
	SegmentationTypeUnscheduledEventStart     uint32 = 0x40
	SegmentationTypeUnscheduledEventEnd       uint32 = 0x41
	SegmentationTypeAltConOppStart            uint32 = 0x42
	SegmentationTypeAltConOppEnd              uint32 = 0x43
	SegmentationTypeProviderAdBlockStart      uint32 = 0x44
	SegmentationTypeProviderAdBlockEnd        uint32 = 0x45
	SegmentationTypeDistributorAdBlockStart   uint32 = 0x46
	SegmentationTypeDistributorAdBlockEnd     uint32 = 0x47
	SegmentationTypeNetworkStart              uint32 = 0x50
	SegmentationTypeNetworkEnd                uint32 = 0x51
)

// SegmentationDescriptor carries segmentation information per SCTE-35
// 10.3.3. When SegmentationEventCancelIndicator is set, every field after
// it is left at its zero value.
type SegmentationDescriptor struct {
	DescriptorLength uint32
	Identifier       uint32

	SegmentationEventID              uint32
	SegmentationEventCancelIndicator bool
	ProgramSegmentationFlag          bool
	SegmentationDurationFlag         bool
	DeliveryNotRestrictedFlag        bool

	// Restriction fields, read only when delivery is restricted.
	WebDeliveryAllowedFlag bool
	NoRegionalBlackoutFlag bool
	ArchiveAllowedFlag     bool
	DeviceRestrictions     uint32

	Components           []SegmentationComponent
	SegmentationDuration *MPEGTime

	SegmentationUPIDType   uint32
	SegmentationUPIDLength uint32
	SegmentationUPID       []byte

	SegmentationTypeID uint32
	SegmentNum         uint32
	SegmentsExpected   uint32

	// Present only for Provider/Distributor Placement Opportunity Start
	// (0x34, 0x36).
	SubSegmentNum       *uint32
	SubSegmentsExpected *uint32
}

// SegmentationComponent ties a component tag to its PTS offset.
type SegmentationComponent struct {
	Tag       uint32
	PTSOffset MPEGTime
}

// Tag returns SegmentationDescriptorTag.
func (sd *SegmentationDescriptor) Tag() uint32 {
	return SegmentationDescriptorTag
}

// decodeSpliceDescriptor reads one descriptor record: the 6-byte common
// header followed by the tag-specific body.
func decodeSpliceDescriptor(r *bitReader) (SpliceDescriptor, error) {
	tag := r.readUint32(8)
	length := r.readUint32(8)
	identifier := r.readUint32(32)
	if r.truncated {
		return nil, ErrTruncatedInput
	}

	switch tag {
	case SegmentationDescriptorTag:
		sd := &SegmentationDescriptor{
			DescriptorLength: length,
			Identifier:       identifier,
		}
		if err := sd.decode(r); err != nil {
			return nil, err
		}
		return sd, nil
	case AvailDescriptorTag, DTMFDescriptorTag, TimeDescriptorTag:
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnsupportedDescriptorTag, tag)
	default:
		return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownDescriptorTag, tag)
	}
}

func (sd *SegmentationDescriptor) decode(r *bitReader) error {
	sd.SegmentationEventID = r.readUint32(32)
	sd.SegmentationEventCancelIndicator = r.readBit()
	r.skip(7) // reserved
	if r.truncated {
		return ErrTruncatedInput
	}

	if sd.SegmentationEventCancelIndicator {
		return nil
	}

	sd.ProgramSegmentationFlag = r.readBit()
	sd.SegmentationDurationFlag = r.readBit()
	sd.DeliveryNotRestrictedFlag = r.readBit()
	if !sd.DeliveryNotRestrictedFlag {
		sd.WebDeliveryAllowedFlag = r.readBit()
		sd.NoRegionalBlackoutFlag = r.readBit()
		sd.ArchiveAllowedFlag = r.readBit()
		sd.DeviceRestrictions = r.readUint32(2)
	} else {
		r.skip(5) // reserved
	}

	if !sd.ProgramSegmentationFlag {
		componentCount := int(r.readUint32(8))
		if r.truncated {
			return ErrTruncatedInput
		}
		for i := 0; i < componentCount; i++ {
			c := SegmentationComponent{Tag: r.readUint32(8)}
			r.skip(7) // reserved
			c.PTSOffset = MPEGTime(r.readUint64(33))
			if r.truncated {
				return ErrTruncatedInput
			}
			sd.Components = append(sd.Components, c)
		}
	}

	if sd.SegmentationDurationFlag {
		dur := MPEGTime(r.readUint64(40))
		sd.SegmentationDuration = &dur
	}

	sd.SegmentationUPIDType = r.readUint32(8)
	sd.SegmentationUPIDLength = r.readUint32(8)
	if r.truncated {
		return ErrTruncatedInput
	}
	sd.SegmentationUPID = r.readBytes(int(sd.SegmentationUPIDLength))

	sd.SegmentationTypeID = r.readUint32(8)
	sd.SegmentNum = r.readUint32(8)
	sd.SegmentsExpected = r.readUint32(8)

	if sd.SegmentationTypeID == SegmentationTypeProviderPOStart ||
		sd.SegmentationTypeID == SegmentationTypeDistributorPOStart {
		subNum := r.readUint32(8)
		subExpected := r.readUint32(8)
		sd.SubSegmentNum = &subNum
		sd.SubSegmentsExpected = &subExpected
	}

	if r.truncated {
		return ErrTruncatedInput
	}
	return nil
}

// Name returns a human-readable name for the segmentation type.
func (sd *SegmentationDescriptor) Name() string {
	switch sd.SegmentationTypeID {
	case SegmentationTypeNotIndicated:
		return "Not Indicated"
	case SegmentationTypeContentIdentification:
		return "Content Identification"
	case SegmentationTypeProgramStart:
		return "Program Start"
	case SegmentationTypeProgramEnd:
		return "Program End"
	case SegmentationTypeProgramEarlyTermination:
		return "Program Early Termination"
	case SegmentationTypeProgramBreakaway:
		return "Program Breakaway"
	case SegmentationTypeProgramResumption:
		return "Program Resumption"
	case SegmentationTypeProgramRunoverPlanned:
		return "Program Runover Planned"
	case SegmentationTypeProgramRunoverUnplanned:
		return "Program Runover Unplanned"
	case SegmentationTypeProgramOverlapStart:
		return "Program Overlap Start"
	case SegmentationTypeProgramBlackoutOverride:
		return "Program Blackout Override"
	case SegmentationTypeProgramStartInProgress:
		return "Program Start - In Progress"
	case SegmentationTypeChapterStart:
		return "Chapter Start"
	case SegmentationTypeChapterEnd:
		return "Chapter End"
	case SegmentationTypeBreakStart:
		return "Break Start"
	case SegmentationTypeBreakEnd:
		return "Break End"
	case SegmentationTypeOpeningCreditStart:
		return "Opening Credit Start"
	case SegmentationTypeOpeningCreditEnd:
		return "Opening Credit End"
	case SegmentationTypeClosingCreditStart:
		return "Closing Credit Start"
	case SegmentationTypeClosingCreditEnd:
		return "Closing Credit End"
	case SegmentationTypeProviderAdStart:
		return "Provider Advertisement Start"
	case SegmentationTypeProviderAdEnd:
		return "Provider Advertisement End"
	case SegmentationTypeDistributorAdStart:
		return "Distributor Advertisement Start"
	case SegmentationTypeDistributorAdEnd:
		return "Distributor Advertisement End"
	case SegmentationTypeProviderPOStart:
		return "Provider Placement Opportunity Start"
	case SegmentationTypeProviderPOEnd:
		return "Provider Placement Opportunity End"
	case SegmentationTypeDistributorPOStart:
		return "Distributor Placement Opportunity Start"
	case SegmentationTypeDistributorPOEnd:
		return "Distributor Placement Opportunity End"
	case SegmentationTypeProviderOverlayPOStart:
		return "Provider Overlay Placement Opportunity Start"
	case SegmentationTypeProviderOverlayPOEnd:
		return "Provider Overlay Placement Opportunity End"
	case SegmentationTypeDistributorOverlayPOStart:
		return "Distributor Overlay Placement Opportunity Start"
	case SegmentationTypeDistributorOverlayPOEnd:
		return "Distributor Overlay Placement Opportunity End"
	case SegmentationTypeProviderPromoStart:
		return "Provider Promo Start"
	case SegmentationTypeProviderPromoEnd:
		return "Provider Promo End"
	case SegmentationTypeDistributorPromoStart:
		return "Distributor Promo Start"
	case SegmentationTypeDistributorPromoEnd:
		return "Distributor Promo End"
	case SegmentationTypeUnscheduledEventStart:
		return "Unscheduled Event Start"
	case SegmentationTypeUnscheduledEventEnd:
		return "Unscheduled Event End"
	case SegmentationTypeAltConOppStart:
		return "Alternate Content Opportunity Start"
	case SegmentationTypeAltConOppEnd:
		return "Alternate Content Opportunity End"
	case SegmentationTypeProviderAdBlockStart:
		return "Provider Ad Block Start"
	case SegmentationTypeProviderAdBlockEnd:
		return "Provider Ad Block End"
	case SegmentationTypeDistributorAdBlockStart:
		return "Distributor Ad Block Start"
	case SegmentationTypeDistributorAdBlockEnd:
		return "Distributor Ad Block End"
	case SegmentationTypeNetworkStart:
		return "Network Start"
	case SegmentationTypeNetworkEnd:
		return "Network End"
	default:
		return "Unknown"
	}
}
