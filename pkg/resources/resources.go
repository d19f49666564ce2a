package resources

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"f1standings/pkg/badge"
	"f1standings/pkg/helper"
	"f1standings/pkg/model"

	"github.com/pkg/errors"
)

const (
	ResourcesDir = "./resources"
	URLPrefix    = "/resources/"
)

type builder func(ctx context.Context, client *http.Client, url, filePath string) error

type Resource struct {
	id          string
	dir         string
	sourceUrl   string
	prefix      string
	suffix      string
	_type       string
	placeholder bool
	builder     builder
}

// BuildDriverPhoto caches the driver's photo under dir. A photo that cannot
// be downloaded is replaced by a badge in the driver's color.
func BuildDriverPhoto(ctx context.Context, client *http.Client, dir string, d model.Driver) (Resource, error) {
	r := Resource{
		dir:       dir,
		sourceUrl: d.Image,
		builder:   pngBuilderForDriver,
		prefix:    "driver_",
		suffix:    ".png",
		_type:     "driver",
	}

	res, err := r.build(ctx, client, helper.ToID(d.Name))
	if err == nil {
		return res, nil
	}
	log.Printf("Error getting photo for %q: %s. Using placeholder\n", d.Name, err)

	teamColor, cerr := helper.ParseHexColor(d.Color)
	if cerr != nil {
		return r, errors.Wrapf(cerr, "placeholder for %q", d.Name)
	}
	r.id = helper.ToID(d.Name)
	if err := badge.BuildDriverBadgePNG(r.FilePath(), teamColor, badge.DefaultSize); err != nil {
		return r, errors.Wrapf(err, "placeholder for %q", d.Name)
	}
	r.placeholder = true
	return r, nil
}

func (r Resource) buildFilePath(id string) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s%s%s", r.prefix, id, r.suffix))
}

func (r Resource) IsZero() bool {
	return r.id == ""
}

func (r Resource) IsPlaceholder() bool {
	return r.placeholder
}

func (r Resource) String() string {
	return fmt.Sprintf("ID: %s, Type: %s, Source: %s", r.id, r._type, r.sourceUrl)
}

func (r Resource) FilePath() string {
	return r.buildFilePath(r.id)
}

func (r Resource) FileName() string {
	return fmt.Sprintf("%s%s%s", r.prefix, r.id, r.suffix)
}

// URL is the path the web server exposes the resource under.
func (r Resource) URL() string {
	return URLPrefix + r.FileName()
}

func (r *Resource) build(ctx context.Context, client *http.Client, id string) (Resource, error) {
	if id == "" {
		return *r, fmt.Errorf("id cannot be empty")
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return *r, errors.Wrapf(err, "create %s", r.dir)
	}
	if r.sourceUrl == "" {
		return *r, fmt.Errorf("no source url for %s", id)
	}
	filePath := r.buildFilePath(id)
	if _, err := os.Stat(filePath); err == nil {
		log.Printf("resource for %q already exists\n", id)
	} else if os.IsNotExist(err) {
		err := r.builder(ctx, client, r.sourceUrl, filePath)
		if err != nil {
			return *r, err
		}
	} else {
		return *r, err
	}

	r.id = id
	return *r, nil
}

func pngBuilderForDriver(ctx context.Context, client *http.Client, url, filePath string) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	response, err := client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("error getting driver image: %s (%s)", response.Status, url)
	}

	tmp := filePath + ".part"
	file, err := os.Create(tmp)
	if err != nil {
		return err
	}
	_, err = file.ReadFrom(response.Body)
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, filePath)
}

// Photos maps driver names to their cached photo.
type Photos map[string]Resource

// BuildDriverPhotos fetches every roster photo concurrently.
func BuildDriverPhotos(ctx context.Context, client *http.Client, dir string, roster model.Roster) Photos {
	photos := Photos{}
	mu := sync.Mutex{}
	wg := sync.WaitGroup{}
	for _, d := range roster {
		wg.Add(1)
		go func(d model.Driver) {
			defer wg.Done()
			res, err := BuildDriverPhoto(ctx, client, dir, d)
			if err != nil {
				log.Printf("Error building photo for %q: %s\n", d.Name, err)
				return
			}
			if res.IsPlaceholder() {
				log.Printf("Using placeholder badge for %q\n", d.Name)
			}
			mu.Lock()
			photos[d.Name] = res
			mu.Unlock()
		}(d)
	}
	wg.Wait()
	return photos
}

// URLFor returns the local URL of the cached photo, or the remote image
// when nothing is cached.
func (p Photos) URLFor(d model.Driver) string {
	if res, ok := p[d.Name]; ok && !res.IsZero() {
		return res.URL()
	}
	return d.Image
}
