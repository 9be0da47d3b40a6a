package get_token

import (
	"time"

	"github.com/labstack/echo/v4"
)

func GetUserPayloadToken(c echo.Context) PayloadUserDTO {
	strID, _ := c.Get("token_id").(int64)
	strName, _ := c.Get("token_user_name").(string)
	strEmail, _ := c.Get("token_user_email").(string)
	strProfileID, _ := c.Get("token_profile_id").(int64)
	strDocument, _ := c.Get("token_document").(string)
	strExpireAt, _ := c.Get("token_expire_at").(time.Time)

	return PayloadUserDTO{
		ID:        strID,
		Name:      strName,
		Email:     strEmail,
		ProfileID: strProfileID,
		Document:  strDocument,
		ExpireAt:  strExpireAt,
	}
}
