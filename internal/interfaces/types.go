package interfaces

import (
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces/http"
	"github.com/Integrated-Logistics-System/ts-back-end-sub000/internal/interfaces/mcp"
)

// HTTPServer HTTP 서버 타입 별칭
type HTTPServer = http.HTTPServer

// MCPServer MCP 서버 타입 별칭
type MCPServer = mcp.MCPServer
