package kernel_test

import (
	"math"
	"testing"

	"installation/internal/core/domain/model/kernel"
	"installation/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("valid_coordinates", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(-31.9523, 115.8613)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, -31.9523, p.Latitude(), 1e-9)
		assert.InDelta(t, 115.8613, p.Longitude(), 1e-9)
	})

	t.Run("boundary_coordinates", func(t *testing.T) {
		for _, c := range []struct{ lat, lng float64 }{
			{-90, -180},
			{90, 180},
			{0, 0},
		} {
			p, err := kernel.NewGeoPoint(c.lat, c.lng)
			require.NoError(t, err)
			require.NoError(t, p.Validate())
		}
	})

	t.Run("latitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(90.5, 115.0)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("longitude_out_of_range", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(-31.0, -180.5)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("both_out_of_range_joins_errors", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 181)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var p kernel.GeoPoint

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal_points", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(-31.9523, 115.8613)
		p2, _ := kernel.NewGeoPoint(-31.9523, 115.8613)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.True(t, equal)
	})

	t.Run("different_points", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(-31.9523, 115.8613)
		p2, _ := kernel.NewGeoPoint(-32.0569, 115.7439)

		equal, err := p1.IsEqual(p2)

		require.NoError(t, err)
		assert.False(t, equal)
	})

	t.Run("unconstructed_point_fails", func(t *testing.T) {
		p1, _ := kernel.NewGeoPoint(-31.9523, 115.8613)
		var p2 kernel.GeoPoint

		_, err := p1.IsEqual(p2)

		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name: "same point",
			lat1: -31.9523, lng1: 115.8613,
			lat2: -31.9523, lng2: 115.8613,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name: "Perth CBD to Fremantle (~17km)",
			lat1: -31.9523, lng1: 115.8613,
			lat2: -32.0569, lng2: 115.7439,
			wantKm:    16.3,
			tolerance: 1.5,
		},
		{
			name: "Perth to Sydney (~3290km)",
			lat1: -31.9523, lng1: 115.8613,
			lat2: -33.8688, lng2: 151.2093,
			wantKm:    3290,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p1, err := kernel.NewGeoPoint(tt.lat1, tt.lng1)
			require.NoError(t, err)
			p2, err := kernel.NewGeoPoint(tt.lat2, tt.lng2)
			require.NoError(t, err)

			got, err := p1.DistanceKm(p2)
			require.NoError(t, err)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("DistanceKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}

			// Distance is symmetric
			reverse, err := p2.DistanceKm(p1)
			require.NoError(t, err)
			assert.InDelta(t, got, reverse, 1e-9)
		})
	}

	t.Run("unconstructed_point_fails", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(-31.9523, 115.8613)
		var zero kernel.GeoPoint

		_, err := p.DistanceKm(zero)

		require.Error(t, err)
	})
}
