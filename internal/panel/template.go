package panel

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "Segoe UI", sans-serif; margin: 0; background: #faf9f8; color: #323130; }
header { padding: 12px 16px; background: #0078d4; color: #fff; font-weight: 600; }
#messages { padding: 16px; display: flex; flex-direction: column; gap: 12px; }
.message { max-width: 85%; }
.message.user { align-self: flex-end; }
.message-bubble { padding: 8px 12px; border-radius: 8px; background: #fff; box-shadow: 0 1px 2px rgba(0,0,0,.1); white-space: pre-wrap; }
.message.user .message-bubble { background: #0078d4; color: #fff; }
.message.system .message-bubble { background: #fff4ce; }
.message-meta { font-size: 11px; color: #605e5c; margin-top: 4px; display: flex; gap: 8px; }
.code-block { font-family: Consolas, monospace; background: #f3f2f1; padding: 8px; border-radius: 4px; overflow-x: auto; }
code { font-family: Consolas, monospace; background: #f3f2f1; padding: 0 3px; border-radius: 3px; }
.table-container { overflow-x: auto; }
table { border-collapse: collapse; }
th, td { border: 1px solid #c8c6c4; padding: 4px 8px; text-align: left; }
th { background: #f3f2f1; }
.typing-dots span { animation: blink 1.4s infinite both; }
.typing-dots span:nth-child(2) { animation-delay: .2s; }
.typing-dots span:nth-child(3) { animation-delay: .4s; }
@keyframes blink { 0%, 80%, 100% { opacity: 0; } 40% { opacity: 1; } }
</style>
</head>
<body>
<header>{{.Title}}</header>
<div id="messages">
{{.Messages}}</div>
<footer data-input-enabled="{{.InputEnabled}}"></footer>
</body>
</html>
`))
