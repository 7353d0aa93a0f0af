package gallery

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultPrefix is prepended to every filename to form its image source.
const DefaultPrefix = "images/"

// DefaultImages is the portfolio's built-in manifest. Order is irrelevant;
// Sort decides display order. Extension case is kept as shipped.
var DefaultImages = []string{
	"image1.jpg", "image10.jpg", "image11.jpg", "image12.jpg", "image13.jpg", "image14.JPG", "image15.jpg",
	"image16.jpg", "image17.jpg", "image18.jpg", "image19.jpg", "image2.jpg", "image20.jpg", "image21.jpg",
	"image22.jpg", "image23.jpg", "image24.jpg", "image25.jpg", "image26.jpg", "image27.jpg", "image28.jpg",
	"image29.jpg", "image3.jpg", "image30.jpg", "image31.jpg", "image32.jpg", "image33.jpg", "image34.jpg",
	"image35.jpg", "image36.jpg", "image37.jpg", "image38.jpg", "image39.jpg", "image4.jpg", "image40.jpg",
	"image41.jpg", "image42.jpg", "image43.jpg", "image44.jpg", "image45.jpg", "image46.jpg", "image47.jpg",
	"image48.jpg", "image49.jpg", "image5.jpg", "image50.jpg", "image51.jpg", "image52.jpg", "image53.jpg",
	"image54.jpg", "image55.jpg", "image56.jpg", "image57.jpg", "image58.jpg", "image59.jpg", "image6.jpg",
	"image60.jpg", "image61.JPG", "image62.JPG", "image63.JPG", "image64.JPG", "image65.JPG", "image66.jpg",
	"image67.jpg", "image68.png", "image69.png", "image7.jpg", "image70.png", "image71.png", "image72.png",
	"image73.jpg", "image74.jpg", "image75.jpg", "image76.jpg", "image77.jpg", "image8.jpg", "image9.jpg",
}

// Manifest is the static list of gallery images.
type Manifest struct {
	Prefix string   `yaml:"prefix"`
	Images []string `yaml:"images"`
}

// DefaultManifest returns the built-in manifest.
func DefaultManifest() Manifest {
	images := make([]string, len(DefaultImages))
	copy(images, DefaultImages)
	return Manifest{Prefix: DefaultPrefix, Images: images}
}

// LoadManifest reads a YAML manifest. An empty path yields the default.
// A file without a prefix uses DefaultPrefix.
func LoadManifest(path string) (Manifest, error) {
	if path == "" {
		return DefaultManifest(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("reading gallery manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing gallery manifest %s: %w", path, err)
	}
	if m.Prefix == "" {
		m.Prefix = DefaultPrefix
	}
	return m, nil
}
