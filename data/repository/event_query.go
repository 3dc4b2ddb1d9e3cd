package repository

import (
	"fmt"
	"strconv"
	"strings"

	"events-calendar/data/models"
)

// QueryEvents runs a filtered, sorted, paginated listing over the event
// table. Query parameters use the models' JSON field names, optionally
// suffixed with a comparison operator (_ne, _lt, _gt, _lte, _gte,
// _contains); date-window listings use start_date_gte / end_date_lte.
func (sr *SqlRepo) QueryEvents(queryParams map[string]string) ([]models.Event, error) {
	clauses, values, limit, err := buildQueryClauses(queryParams, models.Event{})
	if err != nil {
		return nil, fmt.Errorf("invalid query: %v", err)
	}

	query := fmt.Sprintf("SELECT * FROM %s %s", models.Event{}.TableName(), clauses)
	rows, err := sr.DB.Query(query, values...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %v", err)
	}
	defer rows.Close()

	result, err := models.ScanRowsToSliceOfModels(models.Event{}, rows, limit)
	if err != nil {
		return nil, err
	}

	events, ok := result.(*[]models.Event)
	if !ok {
		return nil, fmt.Errorf("type assertion to []Event failed")
	}
	return *events, nil
}

// buildQueryClauses constructs the formatted and parameterized WHERE / ORDER
// BY / LIMIT clauses from the given query parameters. It returns the clause
// string, the values to be passed alongside the query, and the resolved
// limit.
func buildQueryClauses(queryParams map[string]string, m models.Model) (string, []interface{}, int, error) {
	placeholderIndex := 1
	jsonMap := models.MapJsonTagsToDB(m)

	// Filtering
	whereClause, values, placeholderIndex, err := buildWhereClause(queryParams, placeholderIndex, jsonMap)
	if err != nil {
		return "", nil, 0, err
	}

	// Sorting
	sort, order, err := buildSortingClause(queryParams, jsonMap)
	if err != nil {
		return "", nil, 0, err
	}
	orderClause := fmt.Sprintf("ORDER BY %s %s", sort, order)

	// Pagination
	limit, offset, err := buildPaginationClause(queryParams)
	if err != nil {
		return "", nil, 0, err
	}
	paginationClause := fmt.Sprintf("LIMIT $%d OFFSET $%d", placeholderIndex, placeholderIndex+1)
	values = append(values, limit, offset)

	var clauses string
	if whereClause != "" {
		clauses = fmt.Sprintf("%s %s %s", whereClause, orderClause, paginationClause)
	} else {
		clauses = fmt.Sprintf("%s %s", orderClause, paginationClause)
	}

	return clauses, values, limit, nil
}

func buildWhereClause(queryParams map[string]string, phIndex int, jsonMap map[string]string) (whereClause string, values []interface{}, placeholderIndex int, err error) {
	whereClauseParts := []string{}
	values = []interface{}{}

	for key, value := range queryParams {
		// Handled by the sorting/pagination builders
		if key == "sortBy" || key == "limit" || key == "offset" {
			continue
		}

		operator, dbColumn, value, err := parseOperatorAndKey(key, value, jsonMap)
		if err != nil {
			return "", nil, 0, err
		}

		whereClauseParts = append(whereClauseParts, fmt.Sprintf("%s %s $%d", dbColumn, operator, phIndex))
		values = append(values, convertValueIfNumeric(value))
		phIndex++
	}

	whereClause = ""
	if len(whereClauseParts) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauseParts, " AND ")
	}

	return whereClause, values, phIndex, nil
}

// parseOperatorAndKey determines the SQL operator and strips the operator
// suffix from the key. It returns the operator, the key's database column
// mapping, and the modified value (if applicable).
func parseOperatorAndKey(key, value string, jsonMap map[string]string) (operator, dbColumn string, modifiedValue string, err error) {
	operator = "="
	modifiedValue = value

	if strings.HasSuffix(key, "_ne") {
		operator = "!="
		key = strings.TrimSuffix(key, "_ne")

	} else if strings.HasSuffix(key, "_lte") {
		operator = "<="
		key = strings.TrimSuffix(key, "_lte")

	} else if strings.HasSuffix(key, "_gte") {
		operator = ">="
		key = strings.TrimSuffix(key, "_gte")

	} else if strings.HasSuffix(key, "_lt") {
		operator = "<"
		key = strings.TrimSuffix(key, "_lt")

	} else if strings.HasSuffix(key, "_gt") {
		operator = ">"
		key = strings.TrimSuffix(key, "_gt")

	} else if strings.HasSuffix(key, "_contains") {
		operator = "LIKE"
		key = strings.TrimSuffix(key, "_contains")
		modifiedValue = "%" + value + "%"
	}

	if err := validateQueryParam(key, jsonMap); err != nil {
		return "", "", "", err
	}

	return operator, jsonMap[key], modifiedValue, nil
}

func buildSortingClause(queryParams map[string]string, jsonMap map[string]string) (string, string, error) {
	sort := queryParams["sortBy"]
	order := "ASC"
	if strings.HasPrefix(sort, "-") {
		order = "DESC"
		sort = strings.TrimPrefix(sort, "-")
	}
	if sort == "" {
		sort = "start_date"
	}

	if err := validateQueryParam(sort, jsonMap); err != nil {
		return "", "", fmt.Errorf("invalid sort value: %v", sort)
	}

	return jsonMap[sort], order, nil
}

func buildPaginationClause(queryParams map[string]string) (int, int, error) {
	limit := 10
	offset := 0
	if l, ok := queryParams["limit"]; ok {
		var err error
		limit, err = strconv.Atoi(l)
		if err != nil {
			return 0, 0, fmt.Errorf("pagination err; limit must be a number: %v", err)
		}
	}
	if o, ok := queryParams["offset"]; ok {
		var err error
		offset, err = strconv.Atoi(o)
		if err != nil {
			return 0, 0, fmt.Errorf("pagination err; offset must be a number: %v", err)
		}
	}
	return limit, offset, nil
}

func convertValueIfNumeric(value string) interface{} {
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	} else if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}
	return value
}

func validateQueryParam(key string, jsonMap map[string]string) error {
	if jsonMap[key] == "" {
		return fmt.Errorf("invalid query parameter: %s", key)
	}
	return nil
}
