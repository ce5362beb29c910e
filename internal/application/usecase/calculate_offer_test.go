package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arinherbz/chat-interferes-sub000/internal/application/dto"
	"github.com/arinherbz/chat-interferes-sub000/internal/application/usecase"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/domainerr"
	"github.com/arinherbz/chat-interferes-sub000/internal/domain/valueobject"
	"github.com/arinherbz/chat-interferes-sub000/pkg/testutil"
)

func previewRequest(answers map[string]string) dto.CalculateOfferRequest {
	return dto.CalculateOfferRequest{
		ShopID:  testutil.TestShopID,
		Device:  dto.DeviceInput{Brand: "Apple", Model: "iPhone 14 Pro", Storage: "256GB"},
		Answers: answers,
	}
}

func TestCalculateOffer_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("looks up the base value", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.preview.Execute(ctx, previewRequest(map[string]string{"screen": "minor_scratches"}))
		require.NoError(t, err)
		assert.Equal(t, 85, resp.ConditionScore)
		assert.Equal(t, "4000000", resp.BaseValue)
		assert.Equal(t, "3400000", resp.CalculatedOffer)
		assert.Equal(t, "auto_accept", resp.Decision)
		assert.Empty(t, resp.RejectionReasons)
	})

	t.Run("supplied base value overrides lookup", func(t *testing.T) {
		f := newFixture(t)
		req := previewRequest(map[string]string{"screen": "cracked"})
		req.Device.Storage = "2TB"
		bv := "1500000"
		req.BaseValue = &bv

		resp, err := f.preview.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "900000", resp.CalculatedOffer)
		assert.Equal(t, "manual_review", resp.Decision)
	})

	t.Run("non positive base value is invalid", func(t *testing.T) {
		f := newFixture(t)
		req := previewRequest(nil)
		bv := "0"
		req.BaseValue = &bv

		_, err := f.preview.Execute(ctx, req)
		assert.ErrorIs(t, err, domainerr.ErrValidation)
	})

	t.Run("duplicate is a hard stop and nothing is recorded", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.submit.Execute(ctx, submitRequest(testutil.ValidIdentity, nil))
		require.NoError(t, err)

		req := previewRequest(nil)
		req.Identity = testutil.ValidIdentity
		resp, err := f.preview.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "auto_reject", resp.Decision)
		assert.Equal(t, []string{valueobject.ReasonDuplicateIdentity}, resp.RejectionReasons)
		assert.Equal(t, "4000000", resp.CalculatedOffer)

		blocks, err := f.store.FindByIdentity(ctx, testutil.ValidIdentity)
		require.NoError(t, err)
		assert.Empty(t, blocks)
	})

	t.Run("invalid identity is a hard stop", func(t *testing.T) {
		f := newFixture(t)
		req := previewRequest(nil)
		req.Identity = testutil.InvalidIdentity

		resp, err := f.preview.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, []string{valueobject.ReasonInvalidIdentity}, resp.RejectionReasons)
	})

	t.Run("blocklist reason surfaces", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.block.Execute(ctx, dto.BlockIdentityRequest{Identity: testutil.OtherIdentity, Reason: "Stolen device feed", Actor: "feed"})
		require.NoError(t, err)

		req := previewRequest(nil)
		req.Identity = testutil.OtherIdentity
		resp, err := f.preview.Execute(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "auto_reject", resp.Decision)
		assert.Equal(t, []string{"Stolen device feed"}, resp.RejectionReasons)
	})

	t.Run("unknown configuration", func(t *testing.T) {
		f := newFixture(t)
		req := previewRequest(nil)
		req.Device.Model = "iPhone 3G"

		_, err := f.preview.Execute(ctx, req)
		assert.ErrorIs(t, err, domainerr.ErrUnknownDeviceConfiguration)
	})
}

func TestValidateIdentity_Execute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name      string
		identity  string
		wantValid bool
		wantCode  string
	}{
		{"valid", testutil.ValidIdentity, true, ""},
		{"checksum mismatch", testutil.InvalidIdentity, false, string(domainerr.CodeChecksumMismatch)},
		{"too short", "4901542032375", false, string(domainerr.CodeInvalidFormat)},
		{"non digits", "49015420323751A", false, string(domainerr.CodeInvalidFormat)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.validate.Execute(ctx, dto.ValidateIdentityRequest{Identity: tt.identity})
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, resp.Valid)
			assert.Equal(t, tt.wantCode, resp.ErrorCode)
			assert.False(t, resp.IsDuplicate)
		})
	}

	t.Run("active trade-in warns", func(t *testing.T) {
		sub, err := f.submit.Execute(ctx, submitRequest(testutil.ValidIdentity, nil))
		require.NoError(t, err)

		resp, err := f.validate.Execute(ctx, dto.ValidateIdentityRequest{Identity: testutil.ValidIdentity})
		require.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.True(t, resp.IsDuplicate)
		assert.Equal(t, usecase.DuplicateWarning, resp.Warning)
		assert.Equal(t, sub.TradeInNumber, resp.ExistingTradeIn)

		resp, err = f.validate.Execute(ctx, dto.ValidateIdentityRequest{Identity: testutil.ValidIdentity, VisibleShop: testutil.TestShopID})
		require.NoError(t, err)
		assert.Equal(t, sub.TradeInNumber, resp.ExistingTradeIn)
	})

	t.Run("other shop's trade-in number is withheld", func(t *testing.T) {
		resp, err := f.validate.Execute(ctx, dto.ValidateIdentityRequest{Identity: testutil.ValidIdentity, VisibleShop: "entebbe-2"})
		require.NoError(t, err)
		assert.True(t, resp.IsDuplicate)
		assert.Equal(t, usecase.DuplicateWarning, resp.Warning)
		assert.Empty(t, resp.ExistingTradeIn)
	})
}
