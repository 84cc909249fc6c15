package payload

import (
	"net/http"

	"google.golang.org/protobuf/proto"
)

// HandlerFunc handles a decoded request payload and returns the payload to respond
// with. Returning a *spanerrors.SpanError controls the status written.
type HandlerFunc[PReq any, Resp proto.Message] func(
	request *http.Request, body Payload[PReq],
) (Payload[Resp], error)

// Handle adapts handler to net/http. The request is decoded with Decode, rejected
// requests get a 400 without calling handler, and the returned payload is written
// with Render.
func Handle[Req any, PReq Message[Req], Resp proto.Message](
	negotiator *Negotiator, handler HandlerFunc[PReq, Resp],
) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		body, err := Decode[Req, PReq](negotiator, request)
		if err != nil {
			negotiator.WriteError(writer, err)
			return
		}

		response, err := handler(request, body)
		if err != nil {
			negotiator.WriteError(writer, err)
			return
		}

		if err := Render(negotiator, writer, response); err != nil {
			negotiator.logger.Debug().Err(err).Msg("error rendering response")
		}
	}
}
