// Package chat turns a user message and its conversation history into a
// completion from a hosted language model.
//
// A [Service] builds the prompt (the role text, the prior turns, the new
// "User:" line and a trailing "Assistant:" cue), sends it to a [Provider]
// and extends the history with the reply. Two providers are available:
// Google Gemini (generateContent) and 01.AI Yi (OpenAI-style chat
// completions). Both response shapes are understood by [ExtractText].
//
// Provider failures never produce an empty reply: the service returns a
// polite fallback text together with the error so transports can surface
// both.
//
// Example usage:
//
//	p := chat.NewYi(chat.YiConfig{APIKey: key, Model: "yi-large", Temperature: 0.3})
//	svc := chat.NewService(p, chat.Options{DefaultRole: role})
//
//	reply, err := svc.Chat(ctx, chat.Request{Message: "Three days in Kyoto?"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(reply.Text)
package chat
