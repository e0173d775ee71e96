package message

import (
	"io"

	"blognest-api/internal/model"
	"blognest-api/pkg/paginator"
)

type SendTextInput struct {
	ReceiverID string
	Content    string
}

type SendMediaInput struct {
	ReceiverID string
	Type       model.MessageType
	MediaURL   string
	Content    string
}

type UploadMediaInput struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type UploadMediaOutput struct {
	URL string
}

type PageInput struct {
	OtherUserID   string
	PaginateQuery paginator.PaginateQuery
}

type PageOutput struct {
	Messages  []model.MessageEvent
	Paginator paginator.Paginator
}

type SummariesInput struct {
	PaginateQuery paginator.PaginateQuery
}

type SummariesOutput struct {
	Summaries []model.ConversationSummary
	Paginator paginator.Paginator
}
