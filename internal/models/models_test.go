package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockLabel(t *testing.T) {
	tests := []struct {
		stock int
		want  string
	}{
		{100, "In Stock"},
		{11, "In Stock"},
		{10, "Low Stock"},
		{1, "Low Stock"},
		{0, "Out of Stock"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StockLabel(tt.stock), "stock=%d", tt.stock)
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "$199.99", FormatMoney(199.99))
	assert.Equal(t, "$1250.50", FormatMoney(1250.5))
}

func TestPasswordSetAndMatches(t *testing.T) {
	var p Password
	require.NoError(t, p.Set("s3cret-passphrase"))
	require.NotEmpty(t, p.Hash)
	assert.NotEqual(t, "s3cret-passphrase", p.Hash)

	ok, err := p.Matches("s3cret-passphrase")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Matches("wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTicketReplyHasOneAuthor(t *testing.T) {
	userID := int64(1)
	customerID := int64(2)

	assert.False(t, (&CreateTicketReplyInput{}).HasOneAuthor())
	assert.False(t, (&CreateTicketReplyInput{UserID: &userID, CustomerID: &customerID}).HasOneAuthor())
	assert.True(t, (&CreateTicketReplyInput{UserID: &userID}).HasOneAuthor())
	assert.True(t, (&CreateTicketReplyInput{CustomerID: &customerID}).HasOneAuthor())
}

func TestStatusValidators(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusPending))
	assert.False(t, ValidOrderStatus("teleported"))

	assert.True(t, ValidRefundStatus(RefundStatusApproved))
	assert.False(t, ValidRefundStatus(""))

	assert.True(t, ValidTicketStatus(TicketStatusInProgress))
	assert.False(t, ValidTicketStatus("snoozed"))

	assert.True(t, ValidProductStatus(ProductStatusDraft))
	assert.False(t, ValidProductStatus("discontinued"))

	assert.True(t, ValidReviewStatus(ReviewStatusRejected))
	assert.False(t, ValidReviewStatus("starred"))
}
