package azstore

// BlobType distinguishes the three kinds of blob the blob service stores.
type BlobType string

const (
	BlobTypeBlock  BlobType = "BlockBlob"
	BlobTypePage   BlobType = "PageBlob"
	BlobTypeAppend BlobType = "AppendBlob"
)

// ParseBlobType converts the wire representation of a blob type.
func ParseBlobType(value string) (BlobType, error) {
	switch blobType := BlobType(value); blobType {
	case BlobTypeBlock, BlobTypePage, BlobTypeAppend:
		return blobType, nil
	}

	return "", &ParseError{Kind: "blob type", Value: value}
}
