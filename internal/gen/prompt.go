package gen

import (
	"fmt"
	"math"
)

// The authored output language is fixed; the prompts ask for Italian
// throughout, matching the delivered player.

func buildPrompt(req Request) string {
	dur := int(math.Round(req.DurationSeconds))
	if req.Transcript != "" {
		return fmt.Sprintf(`Sei un esperto progettista didattico. Un utente ha fornito una trascrizione di un video.
Nome del file video originale: %q
Durata del video: %d secondi
Trascrizione:
---
%s
---

Il tuo compito è analizzare la trascrizione fornita e:
1. Creare 5-8 obiettivi di apprendimento chiari, concisi e misurabili, basati sul contenuto della trascrizione.
2. Generare una banca di %d domande del quiz basate ESCLUSIVAMENTE sulla trascrizione.
3. Il quiz deve rispettare la seguente distribuzione di difficoltà: 50%% facile (%d), 35%% medio (%d), 15%% difficile (%d).
4. Le domande devono coprire un mix di livelli cognitivi: rievocazione, comprensione e applicazione.
5. Per ogni domanda, identifica i timestamp di origine plausibili all'interno della durata del video (da 0 a %d secondi) che giustifichino la domanda.
6. Per le domande a scelta multipla (mcq), crea una risposta inequivocabilmente corretta e tre distrattori plausibili ma errati. Fornisci motivazioni sia per le risposte corrette che per quelle errate.

Restituisci un singolo oggetto JSON che segua lo schema fornito. Non includere alcuna formattazione markdown.
TUTTO L'OUTPUT TESTUALE (obiettivi, domande, scelte, motivazioni) DEVE ESSERE IN ITALIANO.`,
			req.FileName, dur, req.Transcript, BankSize, easyCount, mediumCount, hardCount, dur)
	}
	return fmt.Sprintf(`Sei un esperto progettista didattico. Un utente ha caricato un file video.
Nome del file video: %q
Durata del video: %d secondi

Dato che non puoi guardare il video, devi dedurre il suo probabile contenuto basandoti sul titolo e sulla durata. Immagina una trascrizione plausibile per questo video.

Basandoti sul contenuto dedotto del video, il tuo compito è:
1. Creare 5-8 obiettivi di apprendimento chiari, concisi e misurabili, appropriati per questo video.
2. Generare una banca di %d domande del quiz basate ESCLUSIVAMENTE sul contenuto dedotto.
3. Il quiz deve rispettare la seguente distribuzione di difficoltà: 50%% facile (%d), 35%% medio (%d), 15%% difficile (%d).
4. Le domande devono coprire un mix di livelli cognitivi: rievocazione, comprensione e applicazione.
5. Per ogni domanda, inventa dei timestamp di origine plausibili all'interno della durata del video (da 0 a %d secondi) che giustifichino la domanda e le risposte.
6. Per le domande a scelta multipla (mcq), crea una risposta inequivocabilmente corretta e tre distrattori plausibili ma errati. Fornisci motivazioni sia per le risposte corrette che per quelle errate.

Restituisci un singolo oggetto JSON che segua lo schema fornito. Non includere alcuna formattazione markdown.
TUTTO L'OUTPUT TESTUALE (obiettivi, domande, scelte, motivazioni) DEVE ESSERE IN ITALIANO.`,
		req.FileName, dur, BankSize, easyCount, mediumCount, hardCount, dur)
}

// responseSchema is the provider-neutral JSON schema for the structured
// response. Gemini gets it converted to its native schema type; OpenAI gets
// it as a json_schema response format.
func responseSchema() map[string]any {
	letter := map[string]any{"type": "string"}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"learningObjectives": map[string]any{
				"type":        "array",
				"description": "Un elenco di 5-8 obiettivi di apprendimento in punti derivati dal video.",
				"items":       map[string]any{"type": "string"},
			},
			"quizBank": map[string]any{
				"type":        "array",
				"description": "Un elenco di domande del quiz basate sul video e sugli obiettivi.",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":            map[string]any{"type": "string", "description": "Uno tra: 'mcq', 'true_false', 'short_answer'."},
						"difficulty":      map[string]any{"type": "string", "description": "Uno tra: 'easy', 'medium', 'hard'."},
						"cognitive_level": map[string]any{"type": "string", "description": "Uno tra: 'recall', 'understand', 'apply'."},
						"stem":            map[string]any{"type": "string", "description": "Il testo della domanda."},
						"choices": map[string]any{
							"type":        "object",
							"description": "Solo per 'mcq': oggetto con chiavi 'A', 'B', 'C' e 'D' per le quattro opzioni.",
							"properties":  map[string]any{"A": letter, "B": letter, "C": letter, "D": letter},
						},
						"correct_answer":    map[string]any{"type": "string", "description": "Per mcq la lettera (es. 'B'). Per vero/falso 'True' o 'False'. Per risposta breve una risposta concisa."},
						"rationale_correct": map[string]any{"type": "string", "description": "Spiegazione del perché la risposta corretta è giusta."},
						"rationale_incorrect": map[string]any{
							"type":        "object",
							"description": "Per mcq, spiegazioni del perché ogni distrattore è sbagliato.",
							"properties":  map[string]any{"A": letter, "B": letter, "C": letter, "D": letter},
						},
						"source_timestamps": map[string]any{
							"type":        "array",
							"description": "Array di coppie [inizio, fine] in secondi dal video che supportano la domanda.",
							"items":       map[string]any{"type": "array", "items": map[string]any{"type": "number"}},
						},
						"tags": map[string]any{
							"type":        "array",
							"description": "Un array di parole chiave pertinenti.",
							"items":       map[string]any{"type": "string"},
						},
					},
					"required": []any{"type", "difficulty", "cognitive_level", "stem", "correct_answer", "rationale_correct", "source_timestamps", "tags"},
				},
			},
		},
		"required": []any{"learningObjectives", "quizBank"},
	}
}
