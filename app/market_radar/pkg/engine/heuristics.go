package engine

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

type segmentKind int

const (
	segmentGeneric segmentKind = iota
	segmentHealth
	segmentDigital
)

func classifySegment(segmento string) segmentKind {
	s := strings.ToLower(segmento)
	switch {
	case strings.Contains(s, "medicina") || strings.Contains(s, "saúde"):
		return segmentHealth
	case strings.Contains(s, "digital") || strings.Contains(s, "online"):
		return segmentDigital
	default:
		return segmentGeneric
	}
}

// MarketIntelligence 按细分市场查表得到的市场情报
func MarketIntelligence(segmento string) model.MarketIntelligence {
	switch classifySegment(segmento) {
	case segmentHealth:
		return model.MarketIntelligence{
			MarketSize:     "R$ 280 bilhões (mercado de saúde brasileiro)",
			GrowthRate:     "12-18% ao ano (pós-pandemia)",
			KeyTrends:      []string{"Telemedicina", "IA em diagnósticos", "Prontuário eletrônico", "Healthtechs", "Medicina preventiva"},
			Opportunities:  []string{"Telemedicina rural", "IA diagnóstica", "Gestão hospitalar digital"},
			Threats:        []string{"Regulamentação CFM", "Concorrência internacional", "Custos tecnológicos"},
			MarketMaturity: "Crescimento acelerado",
			EntryBarriers:  "Altas (regulamentação)",
			SuccessFactors: []string{"Conformidade regulatória", "Tecnologia avançada", "Rede médica"},
		}
	case segmentDigital:
		return model.MarketIntelligence{
			MarketSize:     "R$ 185 bilhões (e-commerce brasileiro 2024)",
			GrowthRate:     "27% ao ano",
			KeyTrends:      []string{"Mobile commerce", "PIX", "Social commerce", "Live commerce", "Marketplace"},
			Opportunities:  []string{"Interior brasileiro", "B2B digital", "Omnichannel"},
			Threats:        []string{"Regulamentação tributária", "Logística", "Concorrência global"},
			MarketMaturity: "Crescimento rápido",
			EntryBarriers:  "Médias",
			SuccessFactors: []string{"Logística eficiente", "Marketing digital", "UX superior"},
		}
	default:
		return model.MarketIntelligence{
			MarketSize:     "Mercado em expansão no Brasil",
			GrowthRate:     "15-25% ao ano (média setores digitais)",
			KeyTrends:      []string{"Digitalização", "Automação", "Personalização", "IA", "Sustentabilidade"},
			Opportunities:  []string{"Nichos inexplorados", "Novas tecnologias", "Mudanças comportamentais"},
			Threats:        []string{"Regulamentações", "Concorrência internacional", "Mudanças econômicas"},
			MarketMaturity: "Crescimento",
			EntryBarriers:  "Médias",
			SuccessFactors: []string{"Inovação", "Qualidade", "Atendimento", "Preço competitivo"},
		}
	}
}

// CompetitorAnalysis 竞争分析模板
func CompetitorAnalysis(segmento string) model.CompetitorAnalysis {
	return model.CompetitorAnalysis{
		DirectCompetitors: []model.Competitor{
			{
				Nome:        fmt.Sprintf("Líder do mercado %s", segmento),
				MarketShare: "28-35%",
				Strengths:   []string{"Marca consolidada", "Rede de distribuição nacional", "Capital abundante"},
				Weaknesses:  []string{"Inovação lenta", "Atendimento impessoal", "Preços elevados"},
				Strategy:    "Liderança por diferenciação e marca",
			},
			{
				Nome:        fmt.Sprintf("Challenger %s", segmento),
				MarketShare: "15-22%",
				Strengths:   []string{"Preço competitivo", "Agilidade", "Inovação tecnológica"},
				Weaknesses:  []string{"Marca em construção", "Recursos limitados", "Cobertura regional"},
				Strategy:    "Liderança por custo e inovação",
			},
		},
		IndirectCompetitors: []string{"Soluções alternativas", "Produtos substitutos", "DIY/Faça você mesmo"},
		CompetitiveGaps: []string{
			"Atendimento personalizado premium",
			"Soluções híbridas online/offline",
			"Integração com tecnologias emergentes",
			"Foco em nichos específicos",
		},
		MarketPositioning: "Oportunidade para posicionamento premium com foco em inovação e atendimento",
		CompetitiveAdvantages: []string{
			"Tecnologia mais avançada",
			"Atendimento superior personalizado",
			"Flexibilidade de soluções",
			"Agilidade de implementação",
		},
	}
}

// TrendAnalysis 按细分市场生成的趋势分析
func TrendAnalysis(segmento string) model.TrendAnalysis {
	var emerging, declining []string
	switch classifySegment(segmento) {
	case segmentHealth:
		emerging = []string{
			"Telemedicina permanente (regulamentada pelo CFM)",
			"IA em diagnósticos médicos",
			"Wearables para monitoramento contínuo",
			"Medicina personalizada baseada em genética",
		}
		declining = []string{"Consultas presenciais exclusivas", "Prontuários físicos"}
	case segmentDigital:
		emerging = []string{
			"Social commerce e live commerce",
			"PIX como padrão de pagamento",
			"IA para personalização de experiência",
			"Sustentabilidade em e-commerce",
		}
		declining = []string{"E-commerce desktop-only", "Pagamentos tradicionais exclusivos"}
	default:
		emerging = []string{
			"Inteligência Artificial aplicada ao negócio",
			"Sustentabilidade e ESG como diferencial",
			"Experiência do cliente omnichannel",
			"Automação de processos críticos",
		}
		declining = []string{"Soluções puramente offline", "Modelos de negócio tradicionais sem inovação"}
	}

	return model.TrendAnalysis{
		EmergingTrends:  emerging,
		DecliningTrends: declining,
		FuturePredictions: []string{
			fmt.Sprintf("Crescimento de 35-50%% no segmento %s nos próximos 2 anos", segmento),
			"Consolidação do mercado com fusões e aquisições",
			"Entrada de players internacionais via parcerias locais",
			"Regulamentação mais específica do setor",
		},
		ImpactAnalysis: "Tendências favorecem empresas inovadoras, ágeis e com foco no cliente",
		AdoptionTimeline: model.AdoptionTimeline{
			ShortTerm:  "IA básica, automação simples, pagamentos digitais",
			MediumTerm: "Integração completa omnichannel, personalização avançada",
			LongTerm:   "Transformação digital completa, novos modelos de negócio",
		},
	}
}
