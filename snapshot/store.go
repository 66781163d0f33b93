package snapshot

import (
	"bytes"
	"context"

	"github.com/AlexVanMeegen/nest-simulator/blobstore"
	"github.com/AlexVanMeegen/nest-simulator/layer"
)

// Save writes a snapshot blob to the store under name.
func Save(ctx context.Context, store blobstore.Store, name string, dim int, entries []layer.Entry, codec Codec) error {
	var buf bytes.Buffer
	if err := Write(&buf, dim, entries, codec); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

// Load reads a snapshot blob from the store.
func Load(ctx context.Context, store blobstore.Store, name string) (int, []layer.Entry, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return 0, nil, err
	}
	return Read(bytes.NewReader(data))
}
