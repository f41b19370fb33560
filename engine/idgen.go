package engine

import "github.com/rs/xid"

// IDGenerator generates identifiers for trace records. Modeled on
// sarchlab/akita's sim.IDGenerator, which wraps github.com/rs/xid for the
// same purpose (unique, sortable, allocation-free ids for messages flowing
// through the simulation).
type IDGenerator interface {
	Generate() string
}

type xidGenerator struct{}

// Generate returns a new globally unique id.
func (xidGenerator) Generate() string {
	return xid.New().String()
}

var defaultIDGenerator IDGenerator = xidGenerator{}

// GenerateID returns a new unique id from the default generator. ep.Comp
// uses it to stamp each popped packet's Delivery record, since sequence
// numbers are only unique per-RC, not globally (topology A and topology B
// each run their own RC). The hook snapshots (rc.Snapshot, noc.Snapshot,
// creditcodec.PackerSnapshot) carry no such id.
func GenerateID() string {
	return defaultIDGenerator.Generate()
}
