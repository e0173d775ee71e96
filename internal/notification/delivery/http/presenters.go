package http

import (
	"strings"

	"blognest-api/internal/model"
	"blognest-api/internal/notification"
	"blognest-api/pkg/paginator"
)

type getReq struct {
	Types      string `form:"types"`
	UnreadOnly bool   `form:"unreadOnly"`
	paginator.PaginateQuery
}

func (r getReq) toInput() notification.GetInput {
	return notification.GetInput{
		Types:         parseTypes(r.Types),
		UnreadOnly:    r.UnreadOnly,
		PaginateQuery: r.PaginateQuery,
	}
}

type markAllReadReq struct {
	Types []string `json:"types"`
}

func (r markAllReadReq) toInput() notification.MarkAllReadInput {
	types := make([]model.NotificationType, 0, len(r.Types))
	for _, raw := range r.Types {
		types = append(types, model.NormalizeNotificationType(raw))
	}
	return notification.MarkAllReadInput{Types: types}
}

type listResp struct {
	Items []model.NotificationEvent   `json:"items"`
	Meta  paginator.PaginatorResponse `json:"meta"`
}

func newListResp(o notification.GetOutput) listResp {
	items := o.Events
	if items == nil {
		items = []model.NotificationEvent{}
	}
	return listResp{
		Items: items,
		Meta:  o.Paginator.ToResponse(),
	}
}

type unreadCountResp struct {
	Count int64 `json:"count"`
}

func parseTypes(raw string) []model.NotificationType {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	types := make([]model.NotificationType, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		types = append(types, model.NormalizeNotificationType(p))
	}
	return types
}
