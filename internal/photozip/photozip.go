// Package photozip builds a ZIP archive holding one copy of a photo per name
// in a list, each file named after the person.
package photozip

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"regexp"
	"strconv"
	"time"
)

var (
	// ErrNoNames is returned when the name list has no non-blank entry.
	ErrNoNames = errors.New("no names provided")

	// ErrUnsupportedPhoto is returned for uploads that are not JPEG or PNG.
	ErrUnsupportedPhoto = errors.New("photo must be a JPEG or PNG image")

	// ErrUnknownSilhouette is returned for an unrecognized built-in photo id.
	ErrUnknownSilhouette = errors.New("unknown silhouette")
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// Photo is the image copied into the archive.
type Photo struct {
	Data []byte
	Ext  string // without dot, e.g. "jpg"
}

// PhotoFromUpload checks that data decodes as a JPEG or PNG image.
func PhotoFromUpload(data []byte) (Photo, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Photo{}, fmt.Errorf("%w: %v", ErrUnsupportedPhoto, err)
	}
	switch format {
	case "jpeg":
		return Photo{Data: data, Ext: "jpg"}, nil
	case "png":
		return Photo{Data: data, Ext: "png"}, nil
	default:
		return Photo{}, fmt.Errorf("%w: got %s", ErrUnsupportedPhoto, format)
	}
}

// Filename maps a person's name to a safe file name: every character outside
// [a-zA-Z0-9_.-] becomes '_', then ext is appended.
func Filename(name, ext string) string {
	return unsafeChars.ReplaceAllString(name, "_") + "." + ext
}

// ArchiveWriter receives named files.
type ArchiveWriter interface {
	Add(name string, data []byte) error
	Close() error
}

// ZipWriter writes files into a ZIP stream without recompressing them.
type ZipWriter struct {
	zw      *zip.Writer
	modTime time.Time
}

// NewZipWriter starts an archive on w.
func NewZipWriter(w io.Writer) *ZipWriter {
	return &ZipWriter{zw: zip.NewWriter(w), modTime: time.Now()}
}

// Add implements ArchiveWriter. Images are already compressed, so entries
// are stored.
func (z *ZipWriter) Add(name string, data []byte) error {
	f, err := z.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Store,
		Modified: z.modTime,
	})
	if err != nil {
		return err
	}
	_, err = f.Write(data)
	return err
}

// Close implements ArchiveWriter.
func (z *ZipWriter) Close() error {
	return z.zw.Close()
}

// Build adds one copy of photo per name to aw and returns the file names in
// input order. A name that maps to an already used file name gets a _2, _3,
// ... suffix before the extension. aw is not closed.
func Build(aw ArchiveWriter, names []string, photo Photo) ([]string, error) {
	if len(names) == 0 {
		return nil, ErrNoNames
	}

	used := make(map[string]bool, len(names))
	files := make([]string, 0, len(names))
	for _, name := range names {
		fn := uniqueName(used, name, photo.Ext)
		if err := aw.Add(fn, photo.Data); err != nil {
			return files, fmt.Errorf("add %s: %w", fn, err)
		}
		files = append(files, fn)
	}
	return files, nil
}

func uniqueName(used map[string]bool, name, ext string) string {
	base := unsafeChars.ReplaceAllString(name, "_")
	fn := base + "." + ext
	for n := 2; used[fn]; n++ {
		fn = base + "_" + strconv.Itoa(n) + "." + ext
	}
	used[fn] = true
	return fn
}
