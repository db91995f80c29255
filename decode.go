package kinesisdemo

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/kinesis/types"
)

// Message is a record with its payload decoded as UTF-8.
type Message struct {
	ShardID        string
	SequenceNumber string
	PartitionKey   string
	ArrivedAt      time.Time
	Text           string
	// Replaced is set when the payload held invalid UTF-8 and the bad bytes
	// were replaced with U+FFFD.
	Replaced bool
}

func decodeRecord(shardID string, r types.Record) *Message {
	msg := &Message{
		ShardID:        shardID,
		SequenceNumber: aws.ToString(r.SequenceNumber),
		PartitionKey:   aws.ToString(r.PartitionKey),
		ArrivedAt:      aws.ToTime(r.ApproximateArrivalTimestamp),
		Text:           string(r.Data),
	}
	if !utf8.Valid(r.Data) {
		msg.Text = strings.ToValidUTF8(msg.Text, string(utf8.RuneError))
		msg.Replaced = true
	}
	return msg
}
