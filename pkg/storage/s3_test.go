package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyFromURL(t *testing.T) {
	c := &S3Client{bucket: "wishes", cdnURL: "https://cdn.example.com"}

	key, ok := c.keyFromURL("https://cdn.example.com/profile_pictures/a.png")
	assert.True(t, ok)
	assert.Equal(t, "profile_pictures/a.png", key)

	key, ok = c.keyFromURL("https://wishes.s3.amazonaws.com/items/b.jpg")
	assert.True(t, ok)
	assert.Equal(t, "items/b.jpg", key)

	_, ok = c.keyFromURL("https://elsewhere.example.com/items/b.jpg")
	assert.False(t, ok)
}

func TestKeyFromURLWithoutCDN(t *testing.T) {
	c := &S3Client{bucket: "wishes"}

	_, ok := c.keyFromURL("/items/b.jpg")
	assert.False(t, ok)

	assert.Equal(t, "https://wishes.s3.amazonaws.com/x/y.png", c.objectURL("x/y.png"))
}

func TestGenerateKey(t *testing.T) {
	key := GenerateKey("items", "Photo.JPG")
	assert.True(t, strings.HasPrefix(key, "items/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.NotEqual(t, key, GenerateKey("items", "Photo.JPG"))

	assert.NotContains(t, GenerateKey("", "noext"), "/")
}
