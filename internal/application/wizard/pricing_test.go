package wizard

import (
	"testing"

	"cancelflow/internal/domain/subscription"

	"github.com/stretchr/testify/assert"
)

func TestDownsellPrice(t *testing.T) {
	tests := []struct {
		name    string
		price   int64
		variant subscription.Variant
		want    int64
	}{
		{
			name:    "variant A halves the price",
			price:   2500,
			variant: subscription.VariantA,
			want:    1250,
		},
		{
			name:    "variant B takes ten dollars off",
			price:   2500,
			variant: subscription.VariantB,
			want:    1500,
		},
		{
			name:    "variant B floors at zero",
			price:   800,
			variant: subscription.VariantB,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DownsellPrice(tt.price, tt.variant))
		})
	}
}
