package line

import (
	"fmt"
	"time"

	"line-knowledge-bot/internal/domain"

	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"
)

// LINE rejects action labels longer than this
const maxLabelRunes = 20

func buildQuickReply(actions []domain.QuickAction) *messaging_api.QuickReply {
	if len(actions) == 0 {
		return nil
	}

	items := make([]messaging_api.QuickReplyItem, 0, len(actions))
	for _, action := range actions {
		items = append(items, messaging_api.QuickReplyItem{
			Action: &messaging_api.PostbackAction{
				Label:       label(action.Label),
				Data:        action.Data,
				DisplayText: action.Label,
			},
		})
	}
	return &messaging_api.QuickReply{Items: items}
}

func buildDocumentCarousel(carousel *domain.DocumentCarousel, loc *time.Location) *messaging_api.FlexCarousel {
	bubbles := make([]messaging_api.FlexBubble, 0, len(carousel.Documents)+1)

	for _, item := range carousel.Documents {
		bubbles = append(bubbles, documentBubble(item, loc))
	}

	if carousel.TotalPages > 1 {
		bubbles = append(bubbles, navigationBubble(carousel))
	}

	return &messaging_api.FlexCarousel{Contents: bubbles}
}

func documentBubble(item domain.CarouselDocument, loc *time.Location) messaging_api.FlexBubble {
	body := []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{
			Text:     "📄 " + item.Document.DisplayName,
			Weight:   messaging_api.FlexTextWEIGHT_BOLD,
			Size:     "md",
			Wrap:     true,
			MaxLines: 3,
		},
	}
	if created := domain.FormatDisplayTime(item.Document.CreatedAt, loc); created != "" {
		body = append(body, &messaging_api.FlexText{
			Text:  "上傳時間：" + created,
			Size:  "xs",
			Color: "#888888",
			Wrap:  true,
		})
	}

	return messaging_api.FlexBubble{
		Body: &messaging_api.FlexBox{
			Layout:   messaging_api.FlexBoxLAYOUT_VERTICAL,
			Spacing:  "sm",
			Contents: body,
		},
		Footer: &messaging_api.FlexBox{
			Layout: messaging_api.FlexBoxLAYOUT_VERTICAL,
			Contents: []messaging_api.FlexComponentInterface{
				&messaging_api.FlexButton{
					Style:  messaging_api.FlexButtonSTYLE_SECONDARY,
					Height: messaging_api.FlexButtonHEIGHT_SM,
					Action: &messaging_api.PostbackAction{
						Label:       "🗑️ 刪除",
						Data:        item.DeleteData,
						DisplayText: "刪除 " + item.Document.DisplayName,
					},
				},
			},
		},
	}
}

func navigationBubble(carousel *domain.DocumentCarousel) messaging_api.FlexBubble {
	contents := []messaging_api.FlexComponentInterface{
		&messaging_api.FlexText{
			Text:   fmt.Sprintf("第 %d / %d 頁", carousel.Page, carousel.TotalPages),
			Weight: messaging_api.FlexTextWEIGHT_BOLD,
			Size:   "md",
			Align:  messaging_api.FlexTextALIGN_CENTER,
		},
		&messaging_api.FlexText{
			Text:  fmt.Sprintf("共 %d 個文件", carousel.TotalDocs),
			Size:  "sm",
			Color: "#888888",
			Align: messaging_api.FlexTextALIGN_CENTER,
		},
		&messaging_api.FlexSeparator{Margin: "md"},
	}

	if carousel.PrevData != "" {
		contents = append(contents, pageButton("⬅️ 上一頁", carousel.PrevData))
	}
	if carousel.NextData != "" {
		contents = append(contents, pageButton("下一頁 ➡️", carousel.NextData))
	}

	return messaging_api.FlexBubble{
		Body: &messaging_api.FlexBox{
			Layout:   messaging_api.FlexBoxLAYOUT_VERTICAL,
			Spacing:  "md",
			Contents: contents,
		},
	}
}

func pageButton(text, data string) *messaging_api.FlexButton {
	return &messaging_api.FlexButton{
		Style:  messaging_api.FlexButtonSTYLE_PRIMARY,
		Height: messaging_api.FlexButtonHEIGHT_SM,
		Action: &messaging_api.PostbackAction{
			Label: label(text),
			Data:  data,
		},
	}
}

func label(s string) string {
	r := []rune(s)
	if len(r) <= maxLabelRunes {
		return s
	}
	return string(r[:maxLabelRunes-1]) + "…"
}
