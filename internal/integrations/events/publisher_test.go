package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMsg struct {
	subject string
	data    []byte
}

type fakeConn struct {
	msgs    []recordedMsg
	err     error
	drained bool
}

func (c *fakeConn) Publish(subj string, data []byte) error {
	if c.err != nil {
		return c.err
	}
	c.msgs = append(c.msgs, recordedMsg{subject: subj, data: data})
	return nil
}

func (c *fakeConn) Drain() error {
	c.drained = true
	return nil
}

func TestNATSPublisher_Publish(t *testing.T) {
	conn := &fakeConn{}
	pub := NewNATSPublisher(conn, "slotbooking")

	event := BookingCancelled{BookingID: 7, SlotID: 3, RefundEligible: true, DepositAmountCents: 1598, CancelledAt: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}
	require.NoError(t, pub.Publish(context.Background(), SubjectBookingCancelled, event))

	require.Len(t, conn.msgs, 1)
	assert.Equal(t, "slotbooking.booking.cancelled", conn.msgs[0].subject)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(conn.msgs[0].data, &decoded))
	assert.Equal(t, true, decoded["refundEligible"])
	assert.Equal(t, float64(1598), decoded["depositAmountCents"])

	require.NoError(t, pub.Close())
	assert.True(t, conn.drained)
}

func TestNATSPublisher_Errors(t *testing.T) {
	conn := &fakeConn{err: errors.New("nats: connection closed")}
	pub := NewNATSPublisher(conn, "")

	err := pub.Publish(context.Background(), SubjectBookingCreated, BookingCreated{BookingID: 1})
	assert.ErrorContains(t, err, "booking.created")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pub.Publish(ctx, SubjectBookingCreated, BookingCreated{}), context.Canceled)
}
