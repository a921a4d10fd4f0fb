package table

import (
	"fmt"

	"github.com/hepsw/rfm/internal/protocol"
)

// document is the on-disk shape of a table: two top-level fields,
// "description" and an unordered sequence of file records. Readers sort by
// name for display; storage order carries no meaning.
type document struct {
	Description string        `yaml:"description"`
	Files       []fileRecord  `yaml:"files"`
}

type fileRecord struct {
	Name         string             `yaml:"name"`
	ProtocolPath protocolPathRecord `yaml:"protocol_path"`
	Marks        marksRecord        `yaml:"marks"`
}

type protocolPathRecord struct {
	Path string `yaml:"path"`
	PID  string `yaml:"pid"`
}

type marksRecord struct {
	Tmstp float64 `yaml:"tmstp"`
	Fid   string  `yaml:"fid"`
}

func recordFromInfo(info Info) fileRecord {
	return fileRecord{
		Name: info.Name,
		ProtocolPath: protocolPathRecord{
			Path: info.Path,
			PID:  string(protocol.Classify(info.Path).Kind),
		},
		Marks: marksRecord{Tmstp: info.Marks.Timestamp, Fid: info.Marks.Fingerprint},
	}
}

func infoFromRecord(rec fileRecord) (Info, error) {
	if !ValidName(rec.Name) {
		return Info{}, fmt.Errorf("entry name %q is empty or contains whitespace", rec.Name)
	}

	classified := protocol.Classify(rec.ProtocolPath.Path)
	if rec.ProtocolPath.PID != "" && rec.ProtocolPath.PID != string(classified.Kind) {
		return Info{}, fmt.Errorf("entry %q: declared protocol %q does not match path %q", rec.Name, rec.ProtocolPath.PID, rec.ProtocolPath.Path)
	}

	marks := Marks{Timestamp: rec.Marks.Tmstp, Fingerprint: rec.Marks.Fid}
	return NewFromFields(rec.Name, rec.ProtocolPath.Path, marks), nil
}
