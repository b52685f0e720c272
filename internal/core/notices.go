package core

import "fmt"

// Localized notices shown to chat participants. The service fronts a Thai
// support desk, so the strings are Thai.
const (
	noticeAdminLoggedIn = "คุณเข้าสู่ระบบแอดมินแล้ว"
	noticeInvalidCode   = "รหัสแอดมินไม่ถูกต้อง"
	noticeNoAdminOnline = "ขณะนี้ไม่มีแอดมินออนไลน์ กรุณารอสักครู่"

	// echoSelfLabel is the sender label on a visitor's own echoed message.
	echoSelfLabel = "คุณ"

	// adminSenderName is the persisted and displayed name on admin replies.
	adminSenderName = "ADMIN"
)

// replyToLabel labels an admin reply copy relayed to the admin pool.
func replyToLabel(targetName string) string {
	return fmt.Sprintf("ตอบถึง %s", targetName)
}
