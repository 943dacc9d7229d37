// internal/security/file_security.go
package security

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// Configuration des photos de profil
const (
	MaxFileSize    = 5 * 1024 * 1024
	MaxImageWidth  = 4000
	MaxImageHeight = 4000
	MinImageSize   = 50
	// Les photos de profil sont réduites à cette taille maximale
	ThumbnailSize = 256
)

// Types MIME autorisés pour les images
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// Extensions autorisées
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// FileValidationError représente une erreur de validation de fichier
type FileValidationError struct {
	Message string
}

func (e FileValidationError) Error() string {
	return e.Message
}

// ValidateImageUpload valide un fichier image uploadé
func ValidateImageUpload(fileHeader *multipart.FileHeader, fileData []byte) error {
	// Vérifier la taille du fichier
	if len(fileData) > MaxFileSize {
		return FileValidationError{
			Message: fmt.Sprintf("le fichier est trop volumineux (max %d MB)", MaxFileSize/1024/1024),
		}
	}

	if len(fileData) == 0 {
		return FileValidationError{Message: "le fichier est vide"}
	}

	// Vérifier l'extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return FileValidationError{
			Message: "type de fichier non autorisé. Seuls les fichiers JPG, PNG et GIF sont acceptés",
		}
	}

	// Vérifier le type MIME déclaré
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		return FileValidationError{Message: "type MIME non autorisé"}
	}

	// Vérifier le type réel du fichier en analysant les magic bytes
	realType, err := detectImageType(fileData)
	if err != nil {
		return FileValidationError{Message: "impossible de détecter le type de fichier"}
	}

	// Vérifier que le type déclaré correspond au type réel
	if !isContentTypeMatchingDetected(contentType, realType) {
		return FileValidationError{
			Message: "le type de fichier déclaré ne correspond pas au contenu réel",
		}
	}

	// Vérifier les dimensions de l'image
	return validateImageDimensions(fileData)
}

// detectImageType détecte le type réel d'une image à partir de ses magic bytes
func detectImageType(data []byte) (string, error) {
	if len(data) < 12 {
		return "", fmt.Errorf("fichier trop petit")
	}

	// PNG magic bytes: 89 50 4E 47 0D 0A 1A 0A
	if bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}) {
		return "image/png", nil
	}

	// JPEG magic bytes: FF D8 FF
	if bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}) {
		return "image/jpeg", nil
	}

	// GIF magic bytes: GIF87a ou GIF89a
	if bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a")) {
		return "image/gif", nil
	}

	return "", fmt.Errorf("type de fichier non reconnu")
}

// isContentTypeMatchingDetected vérifie si le type MIME déclaré correspond au type détecté
func isContentTypeMatchingDetected(declared, detected string) bool {
	// Normaliser les types MIME
	normalizeType := func(t string) string {
		if t == "image/jpg" {
			return "image/jpeg"
		}
		return t
	}

	return normalizeType(declared) == normalizeType(detected)
}

// validateImageDimensions vérifie que l'image a des dimensions raisonnables
func validateImageDimensions(data []byte) error {
	reader := bytes.NewReader(data)

	config, _, err := image.DecodeConfig(reader)
	if err != nil {
		return FileValidationError{Message: "fichier image invalide ou corrompu"}
	}

	if config.Width > MaxImageWidth || config.Height > MaxImageHeight {
		return FileValidationError{
			Message: fmt.Sprintf("image trop grande (%dx%d pixels). Maximum autorisé : %dx%d pixels",
				config.Width, config.Height, MaxImageWidth, MaxImageHeight),
		}
	}

	if config.Width < MinImageSize || config.Height < MinImageSize {
		return FileValidationError{
			Message: fmt.Sprintf("image trop petite (%dx%d pixels). Minimum requis : %dx%d pixels",
				config.Width, config.Height, MinImageSize, MinImageSize),
		}
	}

	return nil
}

// ProcessProfilePicture valide une photo de profil puis la réencode :
// orientation EXIF appliquée, métadonnées supprimées, image réduite en vignette
func ProcessProfilePicture(fileHeader *multipart.FileHeader, fileData []byte) ([]byte, error) {
	if err := ValidateImageUpload(fileHeader, fileData); err != nil {
		return nil, err
	}

	reader := bytes.NewReader(fileData)
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, FileValidationError{Message: "erreur lors du traitement de l'image"}
	}

	// Appliquer l'orientation EXIF avant de perdre les métadonnées au réencodage
	img = applyEXIFOrientation(fileData, img)

	// Réduire en vignette
	img = thumbnail(img, ThumbnailSize)

	// Réencoder l'image (sans métadonnées EXIF)
	var buf bytes.Buffer
	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		return nil, FileValidationError{Message: fmt.Sprintf("format non supporté: %s", format)}
	}

	if err != nil {
		return nil, FileValidationError{Message: "erreur lors du traitement de l'image"}
	}

	return buf.Bytes(), nil
}

// applyEXIFOrientation applique la rotation selon les métadonnées EXIF
func applyEXIFOrientation(data []byte, img image.Image) image.Image {
	// Lire les métadonnées EXIF
	exifData, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		// Pas d'EXIF ou erreur de lecture, retourner l'image telle quelle
		return img
	}

	orientationTag, err := exifData.Get(exif.Orientation)
	if err != nil {
		return img
	}

	orientation, err := orientationTag.Int(0)
	if err != nil {
		return img
	}

	switch orientation {
	case 2:
		return flipHorizontal(img)
	case 3:
		return rotate180(img)
	case 4:
		return flipVertical(img)
	case 5:
		return rotate90Clockwise(flipHorizontal(img))
	case 6:
		return rotate90Clockwise(img)
	case 7:
		return rotate90CounterClockwise(flipHorizontal(img))
	case 8:
		return rotate90CounterClockwise(img)
	default:
		// 1 = orientation normale
		return img
	}
}

// thumbnail réduit une image pour qu'elle tienne dans maxSize x maxSize,
// en conservant les proportions. Une image déjà assez petite est inchangée.
func thumbnail(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w <= maxSize && h <= maxSize {
		return img
	}

	newW, newH := maxSize, maxSize
	if w > h {
		newH = h * maxSize / w
	} else {
		newW = w * maxSize / h
	}

	scaled := image.NewRGBA(image.Rect(0, 0, newW, newH))
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			srcX := bounds.Min.X + x*w/newW
			srcY := bounds.Min.Y + y*h/newH
			scaled.Set(x, y, img.At(srcX, srcY))
		}
	}

	return scaled
}

// Fonctions de transformation d'image

func rotate90Clockwise(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rotated := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// (x,y) -> (h-1-y, x)
			rotated.Set(h-1-(y-bounds.Min.Y), x-bounds.Min.X, img.At(x, y))
		}
	}
	return rotated
}

func rotate90CounterClockwise(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rotated := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// (x,y) -> (y, w-1-x)
			rotated.Set(y-bounds.Min.Y, w-1-(x-bounds.Min.X), img.At(x, y))
		}
	}
	return rotated
}

func rotate180(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	rotated := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rotated.Set(w-1-(x-bounds.Min.X), h-1-(y-bounds.Min.Y), img.At(x, y))
		}
	}
	return rotated
}

func flipHorizontal(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	flipped := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			flipped.Set(w-1-(x-bounds.Min.X), y-bounds.Min.Y, img.At(x, y))
		}
	}
	return flipped
}

func flipVertical(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	flipped := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			flipped.Set(x-bounds.Min.X, h-1-(y-bounds.Min.Y), img.At(x, y))
		}
	}
	return flipped
}
