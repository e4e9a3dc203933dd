package constants

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 验证码用途常量
const (
	VerifyPurposeRegister = "register"
	VerifyPurposeReset    = "reset"
)

// 结算币种常量
const (
	CurrencyGEL = "GEL"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
)

// 支持的结算币种
var SupportedCurrencies = []string{CurrencyGEL, CurrencyUSD, CurrencyEUR}

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin            = "login"
	CaptchaSceneRegisterSendCode = "register_send_code"
	CaptchaSceneResetSendCode    = "reset_send_code"
)

// 队列常量
const (
	QueueDefault        = "default"
	TaskVerifyCodeEmail = "email:verify_code"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "ec"
)

// 分类名称长度上限
const (
	CategoryNameMaxLength = 128
)
