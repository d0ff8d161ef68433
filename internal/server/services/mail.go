package services

import (
	"bytes"
	"text/template"
)

// NotSetPlaceholder replaces an empty question or answer in recovery mail.
const NotSetPlaceholder = "(Not Set / 未设置)"

const subjectPrefix = "【CYBER VAULT】"

type message struct {
	Subject string
	Body    string
}

type mailData struct {
	Email    string
	Question string
	Answer   string
	Host     string
}

var registrationTmpl = template.Must(template.New("registration").Parse(`=== ENGLISH ===

Hello,

You have successfully registered backup recovery for CYBER VAULT.

Your registered email: {{.Email}}
Security question has been securely stored (encrypted).

If you forget your master password, you can request recovery through this email.

Security Notice:
- Your data is encrypted on the server
- Keep your security answer safe
- If you did not register, please ignore this email


=== 中文 ===

您好，

您已成功注册 CYBER VAULT 备份恢复功能。

您的注册邮箱: {{.Email}}
安全问题已加密存储。

如果您忘记主密码，可以通过此邮箱请求恢复。

安全提示:
- 您的数据已在服务器端加密存储
- 请妥善保管您的安全答案
- 如果这不是您本人的操作，请忽略此邮件

-- CYBER VAULT System
-- Server: {{.Host}}`))

var recoveryTmpl = template.Must(template.New("recovery").Parse(`=== ENGLISH ===

Hello,

You requested to recover your vault access.

================================================
Security Question:
{{.Question}}

Security Answer:
{{.Answer}}
================================================

Use this answer to reset your password in the app.

Security Notice:
If you did not request this, please ignore this email.


=== 中文 ===

您好，

您请求恢复金库访问权限。

================================================
安全问题:
{{.Question}}

安全答案:
{{.Answer}}
================================================

请使用此答案在应用中重置您的密码。

安全提示:
如果这不是您本人的操作，请忽略此邮件。

-- CYBER VAULT System
-- Server: {{.Host}}`))

var testTmpl = template.Must(template.New("test").Parse(`这是一封测试邮件。
This is a test email.

-- CYBER VAULT System
-- Server: {{.Host}}`))

func render(t *template.Template, subject string, d mailData) (message, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, d); err != nil {
		return message{}, err
	}
	return message{Subject: subjectPrefix + subject, Body: buf.String()}, nil
}

func registrationMessage(email, host string) (message, error) {
	return render(registrationTmpl, "Registration Success / 注册成功", mailData{Email: email, Host: host})
}

func recoveryMessage(question, answer, host string) (message, error) {
	return render(recoveryTmpl, "Security Recovery / 安全恢复", mailData{Question: question, Answer: answer, Host: host})
}

func testMessage(host string) (message, error) {
	return render(testTmpl, "邮件测试 / Email Test", mailData{Host: host})
}

// orPlaceholder keeps recovery mail self-explanatory when a field is unset.
func orPlaceholder(s string) string {
	if s == "" {
		return NotSetPlaceholder
	}
	return s
}
