package watercolor

import "errors"

// ErrInvalidTextureDimensions is returned by LoadPaperTexture when the pixel
// buffer does not match the declared dimensions.
var ErrInvalidTextureDimensions = errors.New("watercolor: invalid texture dimensions")
