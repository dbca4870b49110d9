package despacho

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/deposito-pro/internal/application/dto"
	"github.com/tu-usuario/deposito-pro/internal/domain"
	"github.com/tu-usuario/deposito-pro/internal/domain/entity"
	"github.com/tu-usuario/deposito-pro/internal/domain/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RegistrarDespachoUseCase concilia bolsones escaneados contra una orden de venta:
// valida el lote completo, agrega peso por producto, descuenta las líneas y marca
// los bolsones como despachados, todo en una sola transacción.
type RegistrarDespachoUseCase struct {
	txRunner   TxRunner
	bolsonRepo repository.BolsonRepository // lecturas fuera de tx (verificación)
}

// NewRegistrarDespachoUseCase construye el caso de uso.
func NewRegistrarDespachoUseCase(txRunner TxRunner, bolsonRepo repository.BolsonRepository) *RegistrarDespachoUseCase {
	return &RegistrarDespachoUseCase{txRunner: txRunner, bolsonRepo: bolsonRepo}
}

// ResultadoDespacho salida de RegistrarDespacho.
type ResultadoDespacho struct {
	DespachoID          string
	BolsonesDespachados int
	OrdenCompleta       bool
	Advertencias        []string
}

// RegistrarDespacho registra el despacho del lote de códigos contra la orden.
//
// Reglas:
//   - códigos repetidos en la misma solicitud → ErrDuplicateCode, nada se aplica
//   - bolsón inexistente → ErrBolsonNotFound; ya despachado → ErrAlreadyDispatched;
//     producto sin línea en la orden → ErrProductNotInOrder. Cualquiera aborta el lote.
//   - sobre-despacho: permitido, la línea queda en cero y se agrega una advertencia.
//   - si todas las líneas llegan a cero la orden pasa a EN_LOGISTICA (OrdenCompleta=true).
func (uc *RegistrarDespachoUseCase) RegistrarDespacho(
	ctx context.Context,
	ordenID string,
	codigos []string,
	responsable, observaciones, userID string,
) (*ResultadoDespacho, error) {
	if ordenID == "" || len(codigos) == 0 {
		return nil, domain.ErrInvalidInput
	}
	vistos := make(map[string]struct{}, len(codigos))
	ordenados := make([]string, 0, len(codigos))
	for _, c := range codigos {
		c = strings.TrimSpace(c)
		if c == "" {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := vistos[c]; ok {
			return nil, domain.ErrDuplicateCode
		}
		vistos[c] = struct{}{}
		ordenados = append(ordenados, c)
	}
	// Orden de bloqueo determinista: las filas de bolsón se toman por código
	// ascendente, igual que la cascada de kit bloquea componentes por id.
	sort.Strings(ordenados)

	now := time.Now()
	var resultado *ResultadoDespacho

	err := uc.txRunner.RunDespacho(ctx, func(
		ordenRepo repository.OrdenVentaRepository,
		bolsonRepo repository.BolsonRepository,
		despachoRepo repository.DespachoRepository,
	) error {
		// Bloquea la orden y sus líneas para todo el lote.
		orden, err := ordenRepo.GetForUpdate(ordenID)
		if err != nil {
			return err
		}
		if orden == nil {
			return domain.ErrNotFound
		}
		if !orden.AdmiteDespacho() {
			return domain.ErrOrderNotOpen
		}

		lineaPorProducto := make(map[string]*entity.LineaOrden, len(orden.Lineas))
		for i := range orden.Lineas {
			lineaPorProducto[normalizarProducto(orden.Lineas[i].Producto)] = &orden.Lineas[i]
		}

		// Fase 1: validar todos los códigos. Ninguna escritura todavía.
		aceptados := make([]*entity.Bolson, 0, len(ordenados))
		pesoPorProducto := make(map[string]decimal.Decimal)
		for _, codigo := range ordenados {
			bolson, err := bolsonRepo.GetByCodigoForUpdate(codigo)
			if err != nil {
				return err
			}
			if bolson == nil {
				return domain.ErrBolsonNotFound
			}
			if bolson.Despachado {
				return domain.ErrAlreadyDispatched
			}
			clave := normalizarProducto(bolson.Producto)
			if _, ok := lineaPorProducto[clave]; !ok {
				return domain.ErrProductNotInOrder
			}
			aceptados = append(aceptados, bolson)
			pesoPorProducto[clave] = pesoPorProducto[clave].Add(bolson.Peso)
		}

		// Fase 2: aplicar. Marca bolsones, descuenta líneas (piso en cero).
		var advertencias []string
		for _, b := range aceptados {
			if err := bolsonRepo.MarcarDespachado(b.ID); err != nil {
				return err
			}
		}
		for clave, peso := range pesoPorProducto {
			linea := lineaPorProducto[clave]
			restante := linea.CantidadRestante.Sub(peso)
			if restante.LessThan(decimal.Zero) {
				advertencias = append(advertencias, fmt.Sprintf(
					"sobre-despacho de %q: se despacharon %s kg con %s kg restantes",
					linea.Producto, peso.String(), linea.CantidadRestante.String(),
				))
				restante = decimal.Zero
			}
			linea.CantidadRestante = restante
			if err := ordenRepo.UpdateLineaRestante(linea.ID, restante); err != nil {
				return err
			}
		}

		completa := true
		for i := range orden.Lineas {
			if orden.Lineas[i].CantidadRestante.GreaterThan(decimal.Zero) {
				completa = false
				break
			}
		}
		if completa {
			if err := ordenRepo.UpdateEstado(orden.ID, entity.EstadoEnLogistica); err != nil {
				return err
			}
		}

		despacho := &entity.Despacho{
			ID:            uuid.New().String(),
			OrdenID:       orden.ID,
			Codigos:       ordenados,
			Responsable:   responsable,
			Observaciones: observaciones,
			Fecha:         now,
			CreatedBy:     userID,
		}
		if err := despachoRepo.Create(despacho); err != nil {
			return err
		}

		resultado = &ResultadoDespacho{
			DespachoID:          despacho.ID,
			BolsonesDespachados: len(aceptados),
			OrdenCompleta:       completa,
			Advertencias:        advertencias,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resultado, nil
}

// VerificarBolson consulta el registro sin modificar estado (idempotente).
// Lo usa el escaneo interactivo para feedback inmediato y el cliente HTTP antes
// de armar el lote.
func (uc *RegistrarDespachoUseCase) VerificarBolson(ctx context.Context, codigo string) (*dto.VerificarBolsonResponse, error) {
	codigo = strings.TrimSpace(codigo)
	if codigo == "" {
		return nil, domain.ErrInvalidInput
	}
	bolson, err := uc.bolsonRepo.GetByCodigo(codigo)
	if err != nil {
		return nil, err
	}
	if bolson == nil {
		return nil, domain.ErrBolsonNotFound
	}
	return &dto.VerificarBolsonResponse{
		Success:    true,
		Despachado: bolson.Despachado,
		Bolson: &dto.BolsonDTO{
			ID:         bolson.ID,
			Codigo:     bolson.Codigo,
			Producto:   bolson.Producto,
			Peso:       bolson.Peso,
			Precinto:   bolson.Precinto,
			Despachado: bolson.Despachado,
			CreatedAt:  bolson.CreatedAt,
		},
	}, nil
}

// normalizarProducto compara nombres de producto sin distinguir mayúsculas ni
// acentos: los nombres en bolsones vienen de la carga de producción y no son FK.
func normalizarProducto(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plano, _, err := transform.String(t, s)
	if err != nil {
		plano = s
	}
	return strings.ToLower(strings.TrimSpace(plano))
}
