package productcontroller

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/moda-viva/storefront-api/models"
)

// defaultImagePath is served for products created without an upload and is
// never deleted from disk.
const defaultImagePath = "/images/products/default.jpg"

func uploadRoot() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// saveImage stores an uploaded file under the products upload folder and
// returns the public URL it will be served from.
func saveImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(uploadRoot(), "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString(), filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return "/uploads/products/" + filename, nil
}

// removeImage deletes a previously stored upload from disk.
func removeImage(publicPath string) {
	if publicPath == "" || publicPath == defaultImagePath {
		return
	}
	if !strings.HasPrefix(publicPath, "/uploads/") {
		return
	}
	_ = os.Remove(filepath.Join(uploadRoot(), strings.TrimPrefix(publicPath, "/uploads/")))
}

type SizeInput struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// parseSizes decodes the multipart "sizes" field, a JSON-encoded array of
// {size, stock} rows replacing the product's per-size stock.
func parseSizes(raw string) ([]models.ProductSize, error) {
	if raw == "" {
		return nil, nil
	}

	var inputs []SizeInput
	if err := json.Unmarshal([]byte(raw), &inputs); err != nil {
		return nil, fmt.Errorf("sizes must be a JSON array: %w", err)
	}

	sizes := make([]models.ProductSize, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if !models.IsValidSize(in.Size) {
			return nil, fmt.Errorf("invalid size %q", in.Size)
		}
		if in.Stock < 0 {
			return nil, fmt.Errorf("stock for size %s cannot be negative", in.Size)
		}
		if seen[in.Size] {
			return nil, fmt.Errorf("duplicate size %q", in.Size)
		}
		seen[in.Size] = true
		sizes = append(sizes, models.ProductSize{Size: in.Size, Stock: in.Stock})
	}
	return sizes, nil
}
