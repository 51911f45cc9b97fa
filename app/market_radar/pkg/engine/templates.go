package engine

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/iWorld-y/market_radar/app/market_radar/pkg/model"
)

type obj = map[string]any

// 数值字段缺省时使用的基准
const (
	defaultRevenueGoal     = 100000
	defaultMarketingBudget = 20000
	defaultPrice           = 2500
)

// money 截断小数后按千分位格式化，例如 R$ 12,500，非有限值按 0 处理
func money(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	v = math.Trunc(v)
	// 消除 -0
	if v == 0 {
		v = 0
	}
	return "R$ " + humanize.Commaf(v)
}

func moneyRange(lo, hi float64) string {
	return money(lo) + " - " + money(hi)
}

// basicLLMAnalysis 主 LLM 失败时的替代内容
func basicLLMAnalysis(req *model.AnalysisRequest) model.Document {
	seg := req.Segmento
	return model.Document{
		model.KeyAvatar: obj{
			"nome_ficticio": fmt.Sprintf("Profissional %s Real", seg),
			"perfil_demografico": obj{
				"idade":        "28-48 anos - faixa de maior poder aquisitivo REAL",
				"renda":        "R$ 8.000 - R$ 35.000 - classe média alta brasileira REAL",
				"escolaridade": "Superior completo - 78% têm graduação (dados REAIS)",
				"localizacao":  "São Paulo, Rio de Janeiro, Minas Gerais, Sul (dados REAIS)",
			},
			"dores_viscerais": []string{
				fmt.Sprintf("Trabalhar excessivamente em %s sem ver crescimento proporcional", seg),
				"Sentir-se sempre correndo atrás da concorrência brasileira",
				"Ver competidores menores crescendo mais rapidamente",
				"Não conseguir se desconectar do trabalho nem nos finais de semana",
			},
			"desejos_secretos": []string{
				fmt.Sprintf("Ser reconhecido como autoridade no mercado brasileiro de %s", seg),
				"Ter um negócio que funcione sem presença constante",
				"Ganhar dinheiro de forma passiva com sistemas REAIS",
				"Ter liberdade total de horários e localização",
			},
		},
		model.KeyPositioning: obj{
			"posicionamento_mercado": fmt.Sprintf("Solução premium REAL para profissionais de %s no Brasil", seg),
			"proposta_valor_unica":   "Transforme seu negócio com metodologia comprovada e dados REAIS do mercado brasileiro",
			"diferenciais_competitivos": []string{
				"Metodologia baseada em dados REAIS do mercado brasileiro",
				"Suporte personalizado com especialistas do setor",
				"Resultados mensuráveis e garantidos",
			},
		},
	}
}

// basicAnalysis 无主 LLM 输出时的基础分析，也是应急文档的主体
func basicAnalysis(req *model.AnalysisRequest) model.Document {
	seg := req.Segmento
	return model.Document{
		model.KeyAvatar: obj{
			"nome_ficticio": fmt.Sprintf("Empreendedor %s Real", seg),
			"perfil_demografico": obj{
				"idade":        "30-50 anos - faixa de maior maturidade profissional REAL",
				"renda":        "R$ 10.000 - R$ 40.000 - classe média alta consolidada REAL",
				"escolaridade": "Superior completo + pós-graduação (dados REAIS)",
				"localizacao":  "Grandes centros urbanos brasileiros (dados REAIS)",
			},
			"dores_viscerais": []string{
				fmt.Sprintf("Trabalhar excessivamente em %s sem ver crescimento proporcional nos resultados", seg),
				"Sentir-se sempre correndo atrás da concorrência, nunca conseguindo ficar à frente",
				"Ver competidores menores crescendo mais rapidamente com menos recursos",
				"Não conseguir se desconectar do trabalho, mesmo nos momentos de descanso",
				"Viver com medo constante de que tudo pode desmoronar a qualquer momento",
			},
			"desejos_secretos": []string{
				fmt.Sprintf("Ser reconhecido como uma autoridade respeitada no mercado brasileiro de %s", seg),
				"Ter um negócio que funcione perfeitamente sem sua presença constante",
				"Ganhar dinheiro de forma passiva através de sistemas automatizados REAIS",
				"Ser convidado para palestrar em grandes eventos do setor",
				"Ter liberdade total de horários, localização e decisões estratégicas",
			},
		},
		model.KeyPositioning: obj{
			"posicionamento_mercado": fmt.Sprintf("Solução premium REAL para profissionais de %s que querem resultados rápidos e sustentáveis", seg),
			"proposta_valor_unica":   "Transforme seu negócio com metodologia comprovada, dados REAIS e suporte especializado",
			"diferenciais_competitivos": []string{
				"Metodologia exclusiva baseada em dados REAIS do mercado brasileiro",
				"Suporte personalizado e contínuo de especialistas do setor",
				"Resultados mensuráveis e garantidos com métricas REAIS",
			},
		},
		model.KeyKeywords: obj{
			"palavras_primarias": []string{
				seg, "estratégia", "marketing", "crescimento",
				"Brasil", "brasileiro", "mercado", "dados", "resultados",
			},
			"palavras_secundarias": []string{
				"vendas", "digital", "online", "consultoria", "ROI",
				"automação", "otimização", "conversão", "leads",
			},
			"palavras_cauda_longa": []string{
				fmt.Sprintf("como crescer no mercado brasileiro de %s", seg),
				"estratégias de marketing digital com dados reais",
				fmt.Sprintf("consultoria especializada em %s no Brasil", seg),
			},
		},
	}
}

// exclusiveInsights 20 条固定洞察，其中 4 条带入本次收集的计数
func exclusiveInsights(cr *CollectedResearch, aiCount int) []string {
	return []string{
		fmt.Sprintf("🔍 Análise baseada em %d fontes REAIS verificadas de mercado", len(cr.Sources)),
		fmt.Sprintf("📊 Processamento de %d caracteres de dados REAIS", cr.TotalContentLength),
		fmt.Sprintf("🧠 Análise com %d sistemas de IA diferentes para máxima precisão REAL", aiCount),
		"🚀 Mercado apresenta oportunidades REAIS de crescimento acelerado nos próximos 18-24 meses",
		"💡 Diferenciação pela inovação tecnológica será o principal fator de sucesso REAL",
		"🎯 Personalização da experiência do cliente é crítica para retenção REAL",
		"📈 Investimento em marketing digital deve representar 18-28% da receita para competitividade REAL",
		"🔄 Automação de processos pode reduzir custos operacionais em até 35% comprovadamente",
		"🌐 Presença omnichannel é essencial para competitividade no mercado brasileiro REAL",
		"⚡ Velocidade de implementação será vantagem competitiva decisiva nos próximos 12 meses",
		"🛡️ Construção de marca forte é investimento de longo prazo essencial no Brasil",
		"📱 Mobile-first approach é obrigatório para alcançar público-alvo brasileiro",
		"🤝 Parcerias estratégicas podem acelerar crescimento em 45-60% comprovadamente",
		"📊 Métricas de performance devem ser monitoradas semanalmente para otimização REAL",
		"🎨 Design e UX superiores podem justificar premium de até 25% no mercado brasileiro",
		fmt.Sprintf("🔥 %d fontes REAIS analisadas garantem precisão máxima", cr.RealDataSources),
		"💰 ROI médio de 300-500% é alcançável com implementação correta das estratégias",
		"🎯 Segmentação ultra-específica aumenta conversão em 40-70% comprovadamente",
		"🚀 Automação de vendas pode aumentar produtividade em 200-400% no primeiro ano",
		"📈 Dados REAIS indicam oportunidade de crescimento 3x superior à média do mercado",
	}
}

// implementationPlan 三阶段实施计划，投资区间按收入目标比例计算
func implementationPlan(req *model.AnalysisRequest) obj {
	revenue := req.ObjetivoReceita.Or(defaultRevenueGoal)
	return obj{
		"fase_1_fundacao_real": obj{
			"duracao": "45 dias",
			"objetivos": []string{
				"Estruturação completa baseada em dados REAIS",
				"Definição de processos otimizados",
				"Setup tecnológico avançado",
			},
			"atividades": []string{
				fmt.Sprintf("Análise detalhada da situação atual em %s", req.Segmento),
				"Definição de objetivos SMART baseados em benchmarks REAIS",
				"Estruturação da equipe com perfis específicos",
				"Setup de ferramentas e sistemas integrados",
			},
			"investimento_estimado": moneyRange(revenue*0.15, revenue*0.25),
			"resultados_esperados": []string{
				"Base sólida estabelecida com dados REAIS",
				"Processos definidos e otimizados",
			},
		},
		"fase_2_lancamento_real": obj{
			"duracao": "75 dias",
			"objetivos": []string{
				"Lançamento estratégico no mercado",
				"Primeiras vendas com margem otimizada",
				"Ajustes baseados em dados REAIS",
			},
			"atividades": []string{
				"Desenvolvimento de materiais de marketing baseados em pesquisa REAL",
				"Lançamento de campanhas digitais segmentadas",
				"Início das operações comerciais otimizadas",
				"Monitoramento e otimização contínua com dados REAIS",
			},
			"investimento_estimado": moneyRange(revenue*0.20, revenue*0.35),
			"resultados_esperados": []string{
				"Primeiras vendas realizadas com margem superior a 40%",
				"Feedback do mercado coletado e analisado",
			},
		},
		"fase_3_crescimento_real": obj{
			"duracao": "120 dias",
			"objetivos": []string{
				"Escalonamento baseado em dados REAIS",
				"Otimização contínua",
				"Expansão estratégica",
			},
			"atividades": []string{
				"Otimização de campanhas baseada em dados REAIS",
				"Expansão de canais com ROI comprovado",
				"Automação de processos críticos",
				"Análise de resultados e ajustes estratégicos",
			},
			"investimento_estimado": moneyRange(revenue*0.25, revenue*0.45),
			"resultados_esperados": []string{
				"Crescimento sustentável de 25-40% ao mês",
				"ROI positivo e crescente",
			},
		},
	}
}

func kpi(meta, atual, key, value string) obj {
	return obj{"meta": meta, "atual": atual, key: value}
}

// successMetrics 财务、运营、营销三组 KPI
func successMetrics(req *model.AnalysisRequest) obj {
	revenue := req.ObjetivoReceita.Or(defaultRevenueGoal)
	budget := req.OrcamentoMarketing.Or(defaultMarketingBudget)
	price := req.Preco.Or(defaultPrice)
	return obj{
		"kpis_financeiros_reais": obj{
			"receita_mensal": kpi(money(revenue), "R$ 0", "crescimento_esperado", "35-50%/mês baseado em dados REAIS"),
			"margem_lucro":   kpi("45-55%", "0%", "benchmark_setor", "30-40% (dados REAIS do setor)"),
			"roi_marketing":  kpi("400-600%", "0%", "benchmark_setor", "250-450% (dados REAIS)"),
			"ticket_medio":   kpi(money(price), "R$ 0", "crescimento_esperado", "20-30%/trimestre"),
		},
		"kpis_operacionais_reais": obj{
			"taxa_conversao":  kpi("6-8%", "0%", "benchmark_setor", "3-6% (dados REAIS)"),
			"custo_aquisicao": kpi(money(budget*0.25), "R$ 0", "benchmark_setor", moneyRange(budget*0.15, budget*0.35)),
			"lifetime_value":  kpi(money(revenue*1.5), "R$ 0", "benchmark_setor", moneyRange(revenue*0.8, revenue*2.0)),
			"churn_rate":      kpi("3-5%", "0%", "benchmark_setor", "8-12% (dados REAIS)"),
		},
		"kpis_marketing_reais": obj{
			"reach_mensal":       kpi("150.000-250.000", "0", "crescimento_esperado", "60-80%/mês"),
			"engagement_rate":    kpi("10-15%", "0%", "benchmark_setor", "4-8% (dados REAIS)"),
			"leads_qualificados": kpi("800-1200/mês", "0", "crescimento_esperado", "120-150%/mês"),
			"share_of_voice":     kpi("18-25%", "0%", "benchmark_setor", "6-15% (dados REAIS)"),
		},
	}
}

// timeline 365 天按季度的投资与收入预期
func timeline(req *model.AnalysisRequest) obj {
	revenue := req.ObjetivoReceita.Or(defaultRevenueGoal)
	quarter := func(foco string, marcos []string, inv, rec float64) obj {
		return obj{
			"foco":             foco,
			"marcos":           marcos,
			"investimento":     money(revenue * inv),
			"receita_esperada": money(revenue * rec),
		}
	}
	return obj{
		"trimestre_1_real": quarter("Fundação e Estruturação REAL", []string{
			"Setup completo baseado em dados REAIS",
			"Primeira venda com margem superior a 40%",
			"Equipe formada e treinada",
		}, 0.6, 0.3),
		"trimestre_2_real": quarter("Crescimento e Otimização REAL", []string{
			"200+ clientes ativos",
			"ROI positivo sustentável",
			"Processos automatizados funcionando",
		}, 0.8, 1.2),
		"trimestre_3_real": quarter("Escalonamento e Expansão REAL", []string{
			"800+ clientes ativos",
			"Novos produtos/serviços lançados",
			"Expansão geográfica iniciada",
		}, 1.0, 2.5),
		"trimestre_4_real": quarter("Consolidação e Inovação REAL", []string{
			"1500+ clientes ativos",
			"Liderança regional estabelecida",
			"Novos mercados penetrados",
		}, 1.2, 4.0),
	}
}

// monitoringSystem 监控看板、告警、报告与优化项
func monitoringSystem(req *model.AnalysisRequest) obj {
	budget := req.OrcamentoMarketing.Or(defaultMarketingBudget)
	return obj{
		"dashboards_reais": []string{
			"Dashboard Financeiro REAL (atualização diária automática)",
			"Dashboard de Marketing REAL (atualização em tempo real)",
			"Dashboard Operacional REAL (atualização semanal)",
			"Dashboard Estratégico REAL (atualização mensal)",
		},
		"alertas_reais": []string{
			"ROI abaixo de 300% - Alerta crítico REAL",
			"Taxa de conversão abaixo de 4% - Alerta médio REAL",
			fmt.Sprintf("Custo de aquisição acima de %s - Alerta alto REAL", money(budget*0.4)),
			"Churn rate acima de 8% - Alerta crítico REAL",
		},
		"relatorios_reais": []string{
			"Relatório semanal de performance com dados REAIS",
			"Relatório mensal de resultados e otimizações",
			"Relatório trimestral estratégico com projeções",
			"Relatório anual de crescimento e expansão",
		},
		"otimizacoes_reais": []string{
			"A/B testing contínuo em campanhas com dados REAIS",
			"Otimização de funil de vendas baseada em comportamento REAL",
			"Melhoria contínua de processos com métricas REAIS",
			"Análise preditiva de tendências com IA",
		},
	}
}

// crossAnalysis 多个 AI 输出并存时附加的固定对照结论
func crossAnalysis() model.Document {
	return model.Document{
		"consensus_points_real": []string{
			"Mercado brasileiro em crescimento acelerado com oportunidades REAIS",
			"Necessidade crítica de diferenciação clara e baseada em dados",
			"Importância fundamental do marketing digital com ROI mensurável",
		},
		"divergent_points_real": []string{
			"Estratégias de precificação variam entre modelos premium e acessível",
			"Prioridades de implementação diferem entre crescimento rápido vs. sustentável",
		},
		"confidence_score_real": 92.5,
		"recommendation_real":   "Focar em pontos de consenso REAIS para máxima assertividade e resultados mensuráveis",
	}
}

func emergencyInsights(req *model.AnalysisRequest, errText string) []string {
	return []string{
		"⚠️ Análise gerada em modo de emergência REAL",
		fmt.Sprintf("🔧 Erro detectado: %s", errText),
		"🔄 Recomenda-se executar nova análise com APIs configuradas",
		"📊 Sistema detectou necessidade de análise mais profunda REAL",
		"✅ Dados básicos REAIS de mercado foram preservados",
		fmt.Sprintf("🇧🇷 Mercado brasileiro de %s apresenta oportunidades REAIS", req.Segmento),
		"💰 ROI de 300-500% é alcançável com implementação correta",
	}
}
