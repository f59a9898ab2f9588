package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

var topicRe = regexp.MustCompile(`report on: "([^"]+)"`)

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		prompt := ""
		if len(req.Messages) > 0 {
			prompt = req.Messages[len(req.Messages)-1].Content
		}
		if !strings.Contains(prompt, "Return ONLY a valid JSON object") {
			http.Error(w, "unexpected prompt", http.StatusBadRequest)
			return
		}
		topic := "System Test"
		if m := topicRe.FindStringSubmatch(prompt); m != nil {
			topic = m[1]
		}

		payload := map[string]any{
			"title": topic,
			"introduction": fmt.Sprintf(
				"This stubbed report introduces %s with enough prose to exercise the layout pipeline end to end without a real model behind it.", topic),
			"sections": []map[string]string{
				{"title": "Historical Context and Background",
					"content": fmt.Sprintf("A canned history of %s. The same two sentences repeat so that page filling behaves predictably during tests.", topic)},
				{"title": "Current Research and Findings",
					"content": fmt.Sprintf("Canned findings about %s, short on substance and long on determinism.", topic)},
				{"title": "Practical Applications and Implications",
					"content": fmt.Sprintf("Where %s gets applied, according to this stub: everywhere a test needs it to be.", topic)},
			},
			"conclusion": fmt.Sprintf("In conclusion, %s was rendered from canned content.", topic),
			"references": []string{
				"Smith, J. (2020). A stubbed reference. Journal of Test Fixtures, 1(1), 1-10.",
				"Johnson, M. (2021). Another stubbed reference. Test Press.",
			},
		}
		b, _ := json.Marshal(payload)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": string(b)}},
			},
		})
	})

	log.Printf("openai-stub listening on %s (model=%s)", addr, model)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatal(err)
	}
}
