package storage

import (
	"bytes"

	"github.com/disintegration/imaging"
)

// ProbeDimensions 读取图片宽高, 无法解码的格式返回 ok=false
func ProbeDimensions(data []byte) (width, height int, ok bool) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return 0, 0, false
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), true
}
