package core

import (
	"context"
	"io"
	"time"

	"github.com/JonMunkholm/cop30utils/internal/lines"
	"github.com/JonMunkholm/cop30utils/internal/photozip"
)

// PhotoZipRequest describes a photo archive to build.
type PhotoZipRequest struct {
	Names string // one name per line

	// Either Upload (JPEG/PNG bytes) or Silhouette (built-in id) selects the
	// photo; Upload wins when both are set.
	Upload     []byte
	Silhouette string
}

// BuildPhotoZip writes a ZIP to w with one copy of the chosen photo per
// name. It returns the file names written, in input order.
func (s *Service) BuildPhotoZip(ctx context.Context, w io.Writer, req PhotoZipRequest) (files []string, err error) {
	start := time.Now()
	names := lines.NonEmpty(req.Names)
	defer func() {
		s.record(ctx, "generate-photo-zip", start, len(names), len(files), err)
	}()

	if len(names) == 0 {
		return nil, photozip.ErrNoNames
	}
	if s.maxZipNames > 0 && len(names) > s.maxZipNames {
		return nil, ErrTooManyLines
	}

	photo, err := resolvePhoto(req)
	if err != nil {
		return nil, err
	}

	err = s.runJob(ctx, func(ctx context.Context) error {
		zw := photozip.NewZipWriter(w)
		files, err = photozip.Build(zw, names, photo)
		if err != nil {
			return err
		}
		return zw.Close()
	})
	return files, err
}

func resolvePhoto(req PhotoZipRequest) (photozip.Photo, error) {
	if len(req.Upload) > 0 {
		return photozip.PhotoFromUpload(req.Upload)
	}
	return photozip.SilhouettePhoto(req.Silhouette)
}
