package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

var ErrInvalidMaskedID = errors.New("invalid masked id")

const idMaskInfo = "pinwall post id mask v1"

// IDMasker 将帖子自增 ID 加密为不透明的分享令牌
// 第一个密钥用于加密, 全部密钥按顺序尝试解密, 以支持轮换
type IDMasker struct {
	keys [][]byte
}

func NewIDMasker(secrets []string) (*IDMasker, error) {
	if len(secrets) == 0 {
		return nil, errors.New("id masking requires at least one key")
	}
	m := &IDMasker{}
	for i, secret := range secrets {
		if secret == "" {
			return nil, fmt.Errorf("id mask key #%d is empty", i)
		}
		key := make([]byte, chacha20poly1305.KeySize)
		if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(idMaskInfo)), key); err != nil {
			return nil, fmt.Errorf("derive id mask key: %w", err)
		}
		m.keys = append(m.keys, key)
	}
	return m, nil
}

// Encode 加密帖子 ID, 每次调用使用新的随机 nonce
func (m *IDMasker) Encode(id uint64) (string, error) {
	aead, err := chacha20poly1305.NewX(m.keys[0])
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+8+aead.Overhead())
	if _, err = rand.Read(nonce); err != nil {
		return "", err
	}

	plain := binary.BigEndian.AppendUint64(nil, id)
	sealed := aead.Seal(nonce, nonce, plain, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode 解密分享令牌
func (m *IDMasker) Decode(token string) (uint64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil || len(raw) != chacha20poly1305.NonceSizeX+8+chacha20poly1305.Overhead {
		return 0, ErrInvalidMaskedID
	}

	nonce, sealed := raw[:chacha20poly1305.NonceSizeX], raw[chacha20poly1305.NonceSizeX:]
	for _, key := range m.keys {
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			return 0, err
		}
		plain, err := aead.Open(nil, nonce, sealed, nil)
		if err == nil {
			return binary.BigEndian.Uint64(plain), nil
		}
	}
	return 0, ErrInvalidMaskedID
}
