package application

import (
	"fmt"
	"strings"

	"line-knowledge-bot/internal/domain"
)

// User-facing reply texts
const (
	msgNoDocuments      = "📁 目前沒有任何文件。\n\n請先上傳文件檔案，就可以開始查詢囉！"
	msgQueryFailed      = "❌ 查詢時發生錯誤，請稍後再試。"
	msgSystemError      = "⚠️ 系統暫時無法處理您的請求，請稍後再試。"
	msgEmptyAnswer      = "抱歉，我找不到相關的答案。"
	msgEmptyQuery       = "查詢內容不能為空。"
	msgStaleCitation    = "找不到此引用，請重新查詢。"
	msgUnknownAction    = "未知的操作。"
	msgActionFailed     = "處理操作時發生錯誤。"
	msgProcessingFile   = "正在處理您的檔案，請稍候..."
	msgDownloadFailed   = "檔案下載失敗，請重試。"
	msgAnalyzingImage   = "正在分析您的圖片，請稍候..."
	msgImageDownload    = "圖片下載失敗，請重試。"
	msgImageTooLarge    = "圖片檔案過大（上限 10 MB），請壓縮後再試。"
	msgImageFailed      = "❌ 圖片分析失敗，請稍後再試。"
	msgDeleteSucceeded  = "✅ 檔案已刪除成功！\n\n如需查看剩餘檔案，請點擊下方按鈕。"
	msgDeleteFailed     = "❌ 刪除檔案失敗，請稍後再試。"
	msgSessionCleared   = "🧹 已清除對話記錄，下次提問將開始新的對話。"
	msgNoSession        = "目前沒有進行中的對話。"
	msgUnknownCommand   = "未知的指令：%s\n輸入 /help 查看可用指令。"
	msgUploadTimeout    = "⏳ 檔案上傳處理逾時，請稍後再試一次。"
	msgUploadFailed     = "❌ 檔案上傳失敗，請稍後再試。"
	msgWelcomeBody      = "歡迎使用文件知識助理！\n\n上傳文件後，就可以直接提問，我會根據文件內容回答並附上引用。\n\n輸入 /help 查看使用說明。"
	msgWelcome          = "👋 " + msgWelcomeBody
	labelListFiles      = "📁 查看檔案"
	labelSummary        = "📝 摘要"
	labelKeyPoints      = "🔑 重點"
	citationLabelFormat = "📄 引用%d"
)

const msgHelp = `📚 文件知識助理使用說明

1. 上傳文件：直接傳送檔案，支援 PDF、DOCX、TXT、MD、HTML、CSV、XML、RTF，以及 DOC、PPT（自動轉檔）。
2. 提問：直接輸入問題，我會根據您上傳的文件回答。
3. 查看檔案：輸入「列出檔案」或 "list files"。
4. 圖片分析：傳送圖片即可取得描述。

在群組或聊天室中，請先 @ 我再提問。

指令：
/help - 顯示此說明
/clear - 清除對話記錄
/session - 查看目前對話狀態`

func unsupportedFormatMessage(ext string) string {
	return fmt.Sprintf(`❌ 不支援的檔案格式：%s

支援的格式：
%s

可自動轉換的格式：
.doc → .docx、.ppt → .pptx

請轉換成以上格式後再上傳。`, ext, strings.Join(domain.NativeExtensions(), "、"))
}

func conversionFailedMessage(fileName string, reason domain.ConversionReason) string {
	detail := "轉檔時發生錯誤"
	switch reason {
	case domain.ConversionToolNotInstalled:
		detail = "伺服器未安裝轉檔工具"
	case domain.ConversionTimeout:
		detail = "轉檔時間過長"
	case domain.ConversionNonZeroExit:
		detail = "檔案可能已損毀或格式不正確"
	}
	return fmt.Sprintf("❌ 檔案轉換失敗：%s\n原因：%s\n\n請自行轉換成 .docx 或 .pdf 後再上傳。", fileName, detail)
}

func uploadSucceededMessage(fileName string) string {
	return fmt.Sprintf("✅ 檔案已成功上傳！\n檔案名稱：%s\n\n現在您可以詢問我關於這個檔案的任何問題。", fileName)
}

func imageResultMessage(description string) string {
	return "📸 圖片分析結果：\n\n" + description
}

func welcomeMessage(displayName string) string {
	if displayName == "" {
		return msgWelcome
	}
	return fmt.Sprintf("👋 %s，%s", displayName, msgWelcomeBody)
}

func sessionInfoMessage(info *domain.SessionInfo, timeoutMinutes int) string {
	retrieval := "關閉"
	if info.RetrievalEnabled {
		retrieval = "開啟"
	}
	return fmt.Sprintf("💬 對話狀態\n\n已持續：%d 分鐘\n閒置：%d 分鐘\n文件檢索：%s\n閒置 %d 分鐘後自動結束",
		int(info.Age.Minutes()), int(info.Idle.Minutes()), retrieval, timeoutMinutes)
}

func citationMessage(index int, citation domain.Citation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📄 引用 %d\n\n", index)
	if citation.Kind == domain.CitationKindWeb {
		fmt.Fprintf(&b, "🔗 標題：%s\n", citation.Title)
		fmt.Fprintf(&b, "🌐 網址：%s", citation.URI)
		return b.String()
	}
	fmt.Fprintf(&b, "📁 文件：%s\n\n", citation.Title)
	fmt.Fprintf(&b, "📝 內容：\n%s", citation.Excerpt)
	if citation.Truncated() {
		b.WriteString("...\n\n（內容過長，僅顯示前 500 字）")
	}
	return b.String()
}

func listAltText(total, page, totalPages int) string {
	return fmt.Sprintf("📁 共 %d 個文件 (第 %d/%d 頁)", total, page, totalPages)
}

func summaryPrompt(fileName string) string {
	return fmt.Sprintf("請幫我總結「%s」這份文件的重點內容", fileName)
}

func keyPointsPrompt(fileName string) string {
	return fmt.Sprintf("請列出「%s」的關鍵要點", fileName)
}
