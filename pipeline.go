package oplogo

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/oplogo/ota"
)

// Extension of raw OTA bitmap files
const otbExt = ".otb"

func (lib *Library) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

// ReadImage decodes the image in file. Files with an ".otb" extension are
// read as raw OTA bitmaps, anything else must be in a format registered with
// the image package.
func ReadImage(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(file), otbExt) {
		return ota.Decode(f)
	}

	m, _, err := image.Decode(f)
	return m, err
}

func (lib *Library) importFile(file string) error {
	m, err := ReadImage(file)
	if err != nil {
		// Anything other than a filesystem error means the file could not
		// be decoded
		var pe *os.PathError
		if errors.As(err, &pe) {
			return err
		}
		lib.logger.Printf("Skipping \"%s\": %v\n", file, err)
		return nil
	}

	l := New()
	if err := l.SetNetwork(lib.network); err != nil {
		return err
	}
	if err := l.SetImage(m); err != nil {
		return err
	}

	names, err := lib.db.FindBySHA1(Fingerprint(l))
	if err != nil {
		return err
	}

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if len(names) > 0 {
		lib.logger.Printf("\"%s\" is identical to \"%s\"\n", file, strings.Join(names, "\", \""))
	}

	if _, err := lib.db.Save(name, l); err != nil {
		return err
	}
	lib.logger.Printf("Imported \"%s\" as \"%s\"\n", file, name)

	return nil
}

func (lib *Library) importWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			if err := lib.importFile(file); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Import walks path converting every image found into a logo, saved under
// the file name without its extension. Raw OTA bitmaps are recognised by
// their ".otb" extension, anything else must be in a format registered with
// the image package.
func (lib *Library) Import(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := lib.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < lib.workers; i++ {
		errc, err := lib.importWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
