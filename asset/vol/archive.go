package vol

import (
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/aerr"
	"github.com/aknetk/Mighty-Switch-Force-3DS-Extractor/asset/lbytes"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

func (r *Archive) Names() []string {
	return lo.Map(
		r.Files,
		func(file File, _ int) string {
			return file.Name
		},
	)
}

// Resolve finds a file by its exact, case-sensitive name.
func (r *Archive) Resolve(name string) (*File, error) {
	index, ok := r.index.GetString(name)
	if ok && r.Files[index].Name == name {
		return &r.Files[index], nil
	}
	if ok {
		// two names share a hash; the later one owns the slot
		file, found := lo.Find(
			r.Files,
			func(file File) bool {
				return file.Name == name
			},
		)
		if found {
			return &file, nil
		}
	}
	return nil, aerr.UnresolvedName("vol.Archive.Resolve", name)
}

// Open returns a reader whose offset 0 is the first byte of the named file. Each call returns an
// independent reader, so files may be decoded concurrently.
func (r *Archive) Open(name string) (*lbytes.Reader, error) {
	file, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	reader, err := r.reader.At(int64(file.Entry.DataOffset))
	if err != nil {
		return nil, errors.Wrapf(err, `vol.Archive.Open error for "%s"`, name)
	}
	return reader, nil
}

// Manifest lists every file with its table record, in declaration order.
func (r *Archive) Manifest() *orderedmap.OrderedMap {
	manifest := orderedmap.New()
	for _, file := range r.Files {
		record := orderedmap.New()
		record.Set("offset", file.Entry.DataOffset)
		record.Set("size", file.Entry.StoredSize)
		record.Set("hash", file.Entry.UnknownHash)
		manifest.Set(file.Name, record)
	}
	return manifest
}
