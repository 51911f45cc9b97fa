package llm

import (
	"fmt"
	"strings"

	dm "github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

const analysisSystemPrompt = "Você é um analista de mercado sênior especializado no Brasil. Responda apenas com um objeto JSON válido, sem markdown."

const analysisSchema = `{
  "avatar_ultra_detalhado": {
    "nome_ficticio": "...",
    "perfil_demografico": {"idade": "...", "renda": "...", "escolaridade": "...", "localizacao": "..."},
    "perfil_psicografico": {"valores": ["..."], "interesses": ["..."], "estilo_vida": "..."},
    "dores_viscerais": ["..."],
    "desejos_secretos": ["..."],
    "objecoes_reais": ["..."]
  },
  "escopo_posicionamento": {
    "posicionamento_mercado": "...",
    "proposta_valor_unica": "...",
    "diferenciais_competitivos": ["..."]
  },
  "estrategia_palavras_chave": {
    "palavras_primarias": ["..."],
    "palavras_secundarias": ["..."],
    "palavras_cauda_longa": ["..."]
  }
}`

const summarySystemPrompt = "Você é um pesquisador de mercado. Resuma o material fornecido de forma objetiva, em português."

const summaryPromptTpl = `Pergunta de pesquisa: %s

Material coletado:
%s

Escreva um resumo em até 5 parágrafos respondendo à pergunta, citando números concretos quando existirem.`

func buildAnalysisPrompt(req *dm.AnalysisRequest, searchContext, attachmentsContext string) string {
	var sb strings.Builder
	sb.WriteString("Gere uma análise de mercado ultra-detalhada para o seguinte negócio:\n\n")
	fmt.Fprintf(&sb, "Segmento: %s\n", req.Segmento)
	writeField(&sb, "Produto/Serviço", req.Produto)
	writeField(&sb, "Público-alvo", req.Publico)
	writeField(&sb, "Concorrentes", req.Concorrentes)
	if req.Preco.Set {
		fmt.Fprintf(&sb, "Preço: R$ %.2f\n", req.Preco.Value)
	}
	if req.ObjetivoReceita.Set {
		fmt.Fprintf(&sb, "Objetivo de receita: R$ %.2f\n", req.ObjetivoReceita.Value)
	}
	if req.OrcamentoMarketing.Set {
		fmt.Fprintf(&sb, "Orçamento de marketing: R$ %.2f\n", req.OrcamentoMarketing.Value)
	}
	writeField(&sb, "Prazo de lançamento", req.PrazoLancamento)
	writeField(&sb, "Dados adicionais", req.DadosAdicionais)

	if searchContext != "" {
		sb.WriteString("\nPESQUISA WEB REAL:\n")
		sb.WriteString(searchContext)
		sb.WriteString("\n")
	}
	if attachmentsContext != "" {
		sb.WriteString("\nANEXOS DO CLIENTE:\n")
		sb.WriteString(attachmentsContext)
		sb.WriteString("\n")
	}

	sb.WriteString("\nResponda estritamente no formato JSON abaixo:\n")
	sb.WriteString(analysisSchema)
	return sb.String()
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%s: %s\n", label, value)
}
