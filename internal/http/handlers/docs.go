package handlers

import "github.com/gin-gonic/gin"

const docsUIHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>ConfirmHub API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
    <style>
      body { margin: 0; background: #f8fafc; }
      #swagger-ui { max-width: 1200px; margin: 0 auto; }
    </style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: "/docs/openapi.yaml",
        dom_id: "#swagger-ui",
        deepLinking: true,
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>`

const openAPISpec = `openapi: 3.0.3
info:
  title: ConfirmHub API
  description: Sends event registration confirmation emails on an operator's behalf.
  version: "1.0"
security:
  - bearerAuth: []
  - apiKeyAuth: []
paths:
  /api/v1/confirmations:
    post:
      summary: Send a confirmation email for one attendee
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              properties:
                name: { type: string, maxLength: 200 }
                email: { type: string, maxLength: 320 }
                eventTitle: { type: string, maxLength: 200 }
                eventDate: { type: string, maxLength: 100 }
                eventTime: { type: string, maxLength: 100 }
                eventLocation: { type: string, maxLength: 300 }
                eventPrice: { type: string, maxLength: 100 }
      responses:
        "200":
          description: Provider accepted the confirmation
          content:
            application/json:
              schema:
                type: object
                properties:
                  outcome: { type: string, enum: [success] }
                  message: { type: string }
                  recipient: { type: string }
                  confirmationNumber: { type: string }
                  registrationDate: { type: string }
                  attemptId: { type: string }
        "400":
          description: Recipient email missing or invalid
        "409":
          description: A send for this attendee is already in flight
        "502":
          description: Provider rejected the send or errored
        "503":
          description: Email delivery is not configured
  /api/v1/provider/status:
    get:
      summary: Report mail provider configuration
      responses:
        "200":
          description: Current provider status
          content:
            application/json:
              schema:
                type: object
                properties:
                  configured: { type: boolean }
                  message: { type: string }
  /api/v1/stats:
    get:
      summary: Dispatch counters for this process
      responses:
        "200":
          description: In-memory counters since start
          content:
            application/json:
              schema:
                type: object
                properties:
                  attempts: { type: integer }
                  succeeded: { type: integer }
                  failed: { type: integer }
                  errored: { type: integer }
                  preflightRejected: { type: integer }
                  durationCount: { type: integer }
                  averageDurationNs: { type: integer }
                  maxDurationNs: { type: integer }
components:
  securitySchemes:
    bearerAuth:
      type: http
      scheme: bearer
      bearerFormat: JWT
    apiKeyAuth:
      type: apiKey
      in: header
      name: X-Api-Key
`

func DocsUI(ctx *gin.Context) {
	ctx.Data(200, "text/html; charset=utf-8", []byte(docsUIHTML))
}

func DocsOpenAPI(ctx *gin.Context) {
	ctx.Data(200, "application/yaml; charset=utf-8", []byte(openAPISpec))
}
