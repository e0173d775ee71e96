package http

import (
	"blognest-api/internal/message"
	"blognest-api/internal/model"
	"blognest-api/pkg/paginator"
)

type sendTextReq struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

func (r sendTextReq) toInput() message.SendTextInput {
	return message.SendTextInput{
		ReceiverID: r.ReceiverID,
		Content:    r.Content,
	}
}

type sendMediaReq struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Type       string `json:"type" binding:"required"`
	MediaURL   string `json:"mediaUrl" binding:"required"`
	Content    string `json:"content"`
}

func (r sendMediaReq) toInput() message.SendMediaInput {
	return message.SendMediaInput{
		ReceiverID: r.ReceiverID,
		Type:       model.MessageType(r.Type),
		MediaURL:   r.MediaURL,
		Content:    r.Content,
	}
}

type pageReq struct {
	paginator.PaginateQuery
}

type pageResp struct {
	Items []model.MessageEvent        `json:"items"`
	Meta  paginator.PaginatorResponse `json:"meta"`
}

func newPageResp(o message.PageOutput) pageResp {
	items := o.Messages
	if items == nil {
		items = []model.MessageEvent{}
	}
	return pageResp{
		Items: items,
		Meta:  o.Paginator.ToResponse(),
	}
}

type summariesResp struct {
	Items []model.ConversationSummary `json:"items"`
	Meta  paginator.PaginatorResponse `json:"meta"`
}

func newSummariesResp(o message.SummariesOutput) summariesResp {
	items := o.Summaries
	if items == nil {
		items = []model.ConversationSummary{}
	}
	return summariesResp{
		Items: items,
		Meta:  o.Paginator.ToResponse(),
	}
}

type unreadTotalResp struct {
	Count int64 `json:"count"`
}

type uploadResp struct {
	URL string `json:"url"`
}
