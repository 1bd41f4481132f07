package mongoclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/color-xyz/goapi/base/ptr"
)

func TestMakeBsonM(t *testing.T) {
	type PatchableListing struct {
		Price           *string `bson:"price,omitempty"`
		AvailableAmount *int64  `bson:"availableAmount,omitempty"`
		Seller          string  `bson:"seller"`
		Note            string  `bson:"note"`
	}

	patchable := &PatchableListing{}
	patchable.Price = ptr.String("")
	patchable.AvailableAmount = ptr.Int64(3)
	patchable.Note = "hey!yo!"

	updater, err := MakeBsonM(patchable)

	assert.NoError(t, err)
	assert.Equal(
		t,
		bson.M{
			"price":           "",
			"availableAmount": int64(3),
			// field seller is empty, so ignore
			"note": "hey!yo!",
		},
		updater,
	)
}
