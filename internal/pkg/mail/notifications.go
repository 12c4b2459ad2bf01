package mail

import (
	"fmt"

	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/internal/pkg/env"
)

// SendVerificationMail sends the double-opt-in link to a freshly registered
// studio account.
func SendVerificationMail(tenant *models.Tenant) error {
	base := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:8080")
	link := fmt.Sprintf("%s/verify?token=%s", base, tenant.VerificationToken)

	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>please confirm your email address to activate your AlbumDesk account:</p>"+
			"<p><a href=\"%s\">Verify my email</a></p>",
		tenant.StudioName, link,
	)
	return SendMail(tenant.Email, "Confirm your AlbumDesk account", body)
}

// SendAlbumDeliveredMail notifies the couple that their selection gallery
// is ready.
func SendAlbumDeliveredMail(customer *models.Customer, toEmail string) error {
	base := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:8080")
	link := fmt.Sprintf("%s/gallery/%s", base, customer.StorageFolder)

	body := fmt.Sprintf(
		"<p>Dear %s &amp; %s,</p>"+
			"<p>your wedding album is ready. You can view and download your photos here:</p>"+
			"<p><a href=\"%s\">Open gallery</a></p>"+
			"<p>Please note that delivered galleries may be removed after the retention period.</p>",
		customer.BrideName, customer.GroomName, link,
	)
	return SendMail(toEmail, "Your wedding album is ready", body)
}
