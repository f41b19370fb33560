// Package tlp defines the two wire-level types shared by every component in
// this repository: RawTLP, the internal transaction-layer packet, and
// AxiWord, its serialized form on the NoC. Bit-width arithmetic keeps field
// widths explicit and implements sub-field packing as mask-and-shift
// helpers, the same technique google-go-pcie-tlp uses to build/parse real
// PCIe TLP headers (other_examples/google-go-pcie-tlp__tlp.go).
package tlp

import "fmt"

// ThreadID selects a destination queue. This repository picks the 1-based
// convention ({1,2,3}, 0 reserved/unused) and asserts it at every boundary
// that accepts a ThreadID from outside this package.
type ThreadID uint8

// Valid thread identifiers. ThreadNone (0) is reserved and never assigned to
// an emitted packet; it exists so "no thread" / "out of range" has a single
// recognizable value to compare against.
const (
	ThreadNone ThreadID = 0
	Thread1    ThreadID = 1
	Thread2    ThreadID = 2
	Thread3    ThreadID = 3
)

// Valid reports whether t is one of the three routable threads.
func (t ThreadID) Valid() bool {
	return t == Thread1 || t == Thread2 || t == Thread3
}

// Index returns the 0-based queue index for a valid ThreadID. Panics if t is
// not Valid; callers must check Valid first (the router is the one place
// that does this, and it silently drops invalid ids rather than calling
// Index on them).
func (t ThreadID) Index() int {
	if !t.Valid() {
		panic(fmt.Sprintf("tlp: thread id %d has no queue index", t))
	}

	return int(t) - 1
}

// ThreadIDFromIndex converts a 0-based queue index back to the 1-based
// ThreadID convention.
func ThreadIDFromIndex(idx int) ThreadID {
	return ThreadID(idx + 1)
}

// RawTLP is a simulated transaction-layer packet.
type RawTLP struct {
	SeqNum   uint32
	ThreadID ThreadID
}

// String renders a RawTLP for log/trace output.
func (p RawTLP) String() string {
	return fmt.Sprintf("RawTLP(seq=%d, tid=%d)", p.SeqNum, p.ThreadID)
}

// AxiWord is the wire format carried by the NoC. TLast is always true in
// this system: every packet fits in a single beat.
type AxiWord struct {
	Data  uint64
	TLast bool
}

// String renders an AxiWord for log/trace output.
func (w AxiWord) String() string {
	return fmt.Sprintf("AxiWord(data=0x%016x, tlast=%v)", w.Data, w.TLast)
}

// Bit widths and shifts for the data-beat interpretation of AxiWord.Data:
// bits[31:0]=seq_num, bits[33:32]=thread_id, bits[63:34]=0.
const (
	dataSeqShift = 0
	dataSeqMask  = 0xFFFFFFFF

	dataTidShift = 32
	dataTidMask  = 0x3
)

// Bit widths and shifts for the credit-beat interpretation of AxiWord.Data:
// bits[15:0]=count_t1, bits[31:16]=count_t2, bits[47:32]=count_t3,
// bits[63:48]=0.
const (
	creditT1Shift = 0
	creditT2Shift = 16
	creditT3Shift = 32
	creditMask    = 0xFFFF
)

// TLPToAxi packs a RawTLP into a data-beat AxiWord.
func TLPToAxi(p RawTLP) AxiWord {
	data := (uint64(p.SeqNum) & dataSeqMask) << dataSeqShift
	data |= (uint64(p.ThreadID) & dataTidMask) << dataTidShift

	return AxiWord{Data: data, TLast: true}
}

// AxiToTLP unpacks a data-beat AxiWord into a RawTLP. The inverse of
// TLPToAxi for every RawTLP with SeqNum < 2^32 and ThreadID < 4.
func AxiToTLP(w AxiWord) RawTLP {
	seq := uint32((w.Data >> dataSeqShift) & dataSeqMask)
	tid := ThreadID((w.Data >> dataTidShift) & dataTidMask)

	return RawTLP{SeqNum: seq, ThreadID: tid}
}

// CreditsToAxi packs three per-thread credit counts into a credit-beat
// AxiWord. Each count saturates at 2^16-1 before packing; CreditPacker is
// responsible for saturating its accumulators, this helper just guards
// against an out-of-range caller.
func CreditsToAxi(t1, t2, t3 uint16) AxiWord {
	data := (uint64(t1) & creditMask) << creditT1Shift
	data |= (uint64(t2) & creditMask) << creditT2Shift
	data |= (uint64(t3) & creditMask) << creditT3Shift

	return AxiWord{Data: data, TLast: true}
}

// AxiToCredits unpacks a credit-beat AxiWord into its three per-thread
// counts. The inverse of CreditsToAxi for every triple with each count
// <2^16.
func AxiToCredits(w AxiWord) (t1, t2, t3 uint16) {
	t1 = uint16((w.Data >> creditT1Shift) & creditMask)
	t2 = uint16((w.Data >> creditT2Shift) & creditMask)
	t3 = uint16((w.Data >> creditT3Shift) & creditMask)

	return t1, t2, t3
}
